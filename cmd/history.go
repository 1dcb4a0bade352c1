package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"chatbridge/pkg/chat"
	"chatbridge/pkg/config"
	"chatbridge/pkg/logger"
	"chatbridge/pkg/slack"
)

var (
	historyChannel string
	historyLimit   int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Fetch recent messages from a channel",
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

		backend, err := slack.New(cfg.Slack, appLogger)
		if err != nil {
			fmt.Printf("failed to configure slack backend: %v\n", err)
			return
		}

		ctx := context.Background()
		if err := backend.Connect(ctx); err != nil {
			fmt.Printf("failed to connect: %v\n", err)
			return
		}

		channelID := historyChannel
		if channelID == "" {
			channelID = cfg.Slack.DefaultChannel
		}
		if channelID == "" {
			fmt.Println("no channel specified (use --channel or slack.default_channel)")
			return
		}

		messages, err := backend.FetchMessages(ctx, channelID, chat.HistoryOptions{Limit: historyLimit})
		if err != nil {
			fmt.Printf("failed to fetch messages: %v\n", err)
			return
		}

		for _, msg := range messages {
			printMessage(msg)
		}
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyChannel, "channel", "", "channel ID to read")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of messages")
	rootCmd.AddCommand(historyCmd)
}
