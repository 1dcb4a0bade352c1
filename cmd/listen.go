package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"chatbridge/pkg/chat"
	"chatbridge/pkg/config"
	"chatbridge/pkg/logger"
	"chatbridge/pkg/metrics"
	"chatbridge/pkg/slack"
)

var (
	listenChannel        string
	listenIncludeOwn     bool
	listenIncludeHistory bool
	listenMetricsAddr    string
)

var (
	authorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	channelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	timeStyle    = lipgloss.NewStyle().Faint(true)
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Stream messages in real time",
	Long:  "Opens a Socket Mode session and prints every incoming message until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		_ = args

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("failed to load config: %v\n", err)
			return
		}

		appLogger, err := logger.New(cfg.Logging)
		if err != nil {
			fmt.Printf("failed to initialize logger: %v\n", err)
			return
		}
		slog.SetDefault(appLogger)
		log := slog.Default().With("component", "cmd.listen")

		if !cfg.Slack.Enabled {
			log.Error("Slack backend is disabled in config")
			return
		}

		backend, err := slack.New(cfg.Slack, appLogger)
		if err != nil {
			log.Error("Failed to configure Slack backend", "error", err)
			return
		}

		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := backend.Connect(runCtx); err != nil {
			log.Error("Failed to connect", "error", err)
			return
		}

		metricsAddr := listenMetricsAddr
		if metricsAddr == "" && cfg.Metrics.Enabled {
			metricsAddr = cfg.Metrics.Addr
		}
		if err := metrics.Start(runCtx, metricsAddr, log); err != nil {
			log.Error("Failed to start metrics listener", "error", err)
			return
		}

		opts := chat.DefaultStreamOptions()
		opts.Channel = listenChannel
		opts.SkipOwn = !listenIncludeOwn
		opts.SkipHistory = !listenIncludeHistory

		messages, err := backend.StreamMessages(runCtx, opts)
		if err != nil {
			log.Error("Failed to open message stream", "error", err)
			return
		}

		log.Info("Listening for messages", "channel", listenChannel)
		for msg := range messages {
			printMessage(msg)
		}
	},
}

func printMessage(msg chat.Message) {
	stamp := timeStyle.Render(msg.CreatedAt.Format("15:04:05"))
	channel := channelStyle.Render("#" + msg.ChannelName())
	author := authorStyle.Render(msg.AuthorName())
	fmt.Printf("%s %s %s: %s\n", stamp, channel, author, msg.Content)
}

func init() {
	listenCmd.Flags().StringVar(&listenChannel, "channel", "", "restrict the stream to one channel ID")
	listenCmd.Flags().BoolVar(&listenIncludeOwn, "include-own", false, "include messages sent by the bot itself")
	listenCmd.Flags().BoolVar(&listenIncludeHistory, "include-history", false, "include messages from before the stream started")
	listenCmd.Flags().StringVar(&listenMetricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address")
	rootCmd.AddCommand(listenCmd)
}
