package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"chatbridge/pkg/config"
	"chatbridge/pkg/logger"
	"chatbridge/pkg/slack"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the connected bot identity",
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

		bot, err := backend.BotInfo(ctx)
		if err != nil || bot == nil {
			fmt.Printf("failed to fetch bot info: %v\n", err)
			return
		}

		fmt.Printf("%s (%s)\n", bot.DisplayName(), bot.ID)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
