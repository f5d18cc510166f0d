// File: internal/cli/serve.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-vendornexus/internal/handlers"
	"github.com/iyunix/go-vendornexus/internal/ratelimit"
	"github.com/iyunix/go-vendornexus/internal/scheduler"
	"github.com/iyunix/go-vendornexus/internal/services/bot"
	"github.com/iyunix/go-vendornexus/internal/services/chat"
	"github.com/iyunix/go-vendornexus/internal/transport/telegram"
)

const shutdownTimeout = 15 * time.Second

// NewServeCmd creates the 'serve' command.
func NewServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (webhook, UI API, vault)",
		Long: `Serve the Telegram webhook, the sourcing API used by the web workspace,
the session vault and vendor exports on one port.

The webhook route is mounted only when TELEGRAM_BOT_TOKEN is set.`,
		Example: `  vendornexus serve
  vendornexus serve --port 9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				if port != "" {
					a.cfg.ServerPort = port
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return runServe(ctx, a)
			})
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides SERVER_PORT)")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	gateway, err := a.gateway()
	if err != nil {
		return err
	}
	turns, err := chat.NewTurnService(a.chatConfig(), gateway, a.logger)
	if err != nil {
		return err
	}
	vaultSvc, err := a.vaultService()
	if err != nil {
		return err
	}
	sessions, err := a.sessionStore()
	if err != nil {
		return err
	}

	purger, err := scheduler.NewSessionPurger(sessions, a.cfg.SessionPurgeSchedule, a.logger)
	if err != nil {
		return err
	}
	defer startPurger(ctx, a, purger)()

	apiLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAPIConfig())
	defer apiLimiter.Close()
	uploadLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.UploadConfig())
	defer uploadLimiter.Close()

	routes := handlers.RouterConfig{
		Sourcing:      handlers.NewSourcingHandler(turns, vaultSvc, a.logger),
		Vault:         handlers.NewVaultHandler(vaultSvc, a.logger),
		Export:        handlers.NewExportHandler(a.logger),
		Documents:     handlers.NewDocumentHandler(a.logger),
		Log:           handlers.NewLogHandler(a.logger),
		JWTSecret:     []byte(a.cfg.JWTSecretKey),
		CORSOrigins:   a.cfg.CORSOrigins,
		APILimiter:    apiLimiter,
		UploadLimiter: uploadLimiter,
		Logger:        a.logger,
	}

	if a.cfg.TelegramBotToken != "" {
		adapter, err := telegram.NewAdapter(&telegram.Config{Token: a.cfg.TelegramBotToken}, a.logger)
		if err != nil {
			return err
		}
		b, err := bot.NewBot(adapter, gateway, sessions, a.chatConfig(), a.logger)
		if err != nil {
			return err
		}
		routes.Webhook = handlers.NewWebhookHandler(adapter, b, a.cfg.TelegramWebhookSecret, a.logger)
		a.logger.Info("telegram webhook enabled", "username", adapter.Username())
	} else {
		a.logger.Warn("TELEGRAM_BOT_TOKEN not set; webhook route disabled")
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           handlers.NewRouter(routes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.logger.Info("server starting",
		"addr", srv.Addr,
		"model", a.cfg.LLMModel,
		"session_backend", a.cfg.SessionBackend,
		"vault_backend", a.cfg.VaultBackend,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server startup failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	a.logger.Info("server stopped gracefully")
	return nil
}

// startPurger runs purger in the background. The returned func stops it and
// waits for a purge in progress, so the session store can be closed after.
func startPurger(ctx context.Context, a *app, purger *scheduler.SessionPurger) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := purger.Run(ctx); err != nil {
			a.logger.Error("session purge scheduler failed", "error", err)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
