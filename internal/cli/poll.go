// File: internal/cli/poll.go
package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-vendornexus/internal/scheduler"
	"github.com/iyunix/go-vendornexus/internal/services/bot"
	"github.com/iyunix/go-vendornexus/internal/transport/telegram"
)

// NewPollCmd creates the 'poll' command.
func NewPollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Run the Telegram bot with long polling",
		Long: `Receive Telegram updates with getUpdates instead of a webhook. Any
registered webhook is removed first. Useful for local development.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				gateway, err := a.gateway()
				if err != nil {
					return err
				}
				sessions, err := a.sessionStore()
				if err != nil {
					return err
				}
				adapter, err := telegram.NewAdapter(&telegram.Config{Token: a.cfg.TelegramBotToken}, a.logger)
				if err != nil {
					return err
				}
				b, err := bot.NewBot(adapter, gateway, sessions, a.chatConfig(), a.logger)
				if err != nil {
					return err
				}

				purger, err := scheduler.NewSessionPurger(sessions, a.cfg.SessionPurgeSchedule, a.logger)
				if err != nil {
					return err
				}
				defer startPurger(ctx, a, purger)()

				return adapter.Poll(ctx, b.HandleText)
			})
		},
	}
}
