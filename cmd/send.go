package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chatbridge/pkg/chat"
	"chatbridge/pkg/config"
	"chatbridge/pkg/logger"
	"chatbridge/pkg/slack"
)

var (
	sendChannel string
	sendThread  string
)

var sendCmd = &cobra.Command{
	Use:   "send [text]",
	Short: "Send a message to a channel",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content := strings.Join(args, " ")

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

		channelID := sendChannel
		if channelID == "" {
			channelID = cfg.Slack.DefaultChannel
		}
		if channelID == "" {
			fmt.Println("no channel specified (use --channel or slack.default_channel)")
			return
		}

		sent, err := backend.SendMessage(ctx, channelID, content, chat.SendOptions{ThreadID: sendThread})
		if err != nil {
			fmt.Printf("failed to send message: %v\n", err)
			return
		}

		fmt.Printf("sent %s to %s\n", sent.ID, sent.ChannelID)
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendChannel, "channel", "", "channel ID to send to")
	sendCmd.Flags().StringVar(&sendThread, "thread", "", "thread timestamp to reply in")
	rootCmd.AddCommand(sendCmd)
}
