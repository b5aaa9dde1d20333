// Command nudged is the screen-nudge notification service.
//
// Usage:
//
//	nudged serve
//	PORT=8080 nudged serve
//	nudged push --token 'ExponentPushToken[xxx]' --title Hi --body Test --vibrate
//	nudged quotes

// @title Screen Nudge API
// @version 1.0.0
// @description Preference ingestion and activity reporting for motivation, screen-time and nudge push notifications.
// @host localhost:3002
// @BasePath /
// @schemes http https
// @contact.name Screen Nudge
// @license.name MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	_ "github.com/albapepper/screen-nudge/docs" // swagger docs
	"github.com/albapepper/screen-nudge/internal/api"
	"github.com/albapepper/screen-nudge/internal/config"
	"github.com/albapepper/screen-nudge/internal/notifications"
	"github.com/albapepper/screen-nudge/internal/policy"
	"github.com/albapepper/screen-nudge/internal/quotes"
	"github.com/albapepper/screen-nudge/internal/users"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "nudged",
		Short:        "Screen-time nudge notification service",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(pushCmd())
	root.AddCommand(quotesCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// --------------------------------------------------------------------------
// serve command
// --------------------------------------------------------------------------

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the per-minute notification engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			return serve(cfg, newLogger(cfg))
		},
	}
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	clock := clockwork.NewRealClock()
	registry := users.NewRegistry(clock)

	sender := notifications.NewExpoSender(cfg.PushGatewayURL, cfg.PushAccessToken, cfg.DispatchTimeout, logger)
	dispatcher := notifications.NewDispatcher(sender, cfg.DispatchTimeout, cfg.DispatchConcurrency, logger)
	engine := notifications.NewEngine(registry, policy.Defaults(quotes.Default()), dispatcher, clock, cfg.Location, logger)

	engineErr := make(chan error, 1)
	go func() { engineErr <- engine.Run(ctx, cfg.TickSchedule) }()

	router := api.NewRouter(registry, engine, clock, cfg, logger)
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting Screen Nudge API",
			"addr", srv.Addr,
			"environment", cfg.Environment,
			"gateway", cfg.PushGatewayURL,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down...")
	case err := <-serverErr:
		logger.Error("Server failed", "error", err)
		runErr = err
		cancel()
	case err := <-engineErr:
		if err != nil {
			logger.Error("Notification engine failed", "error", err)
			runErr = err
		}
		cancel()
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
	return runErr
}

// --------------------------------------------------------------------------
// push command
// --------------------------------------------------------------------------

func pushCmd() *cobra.Command {
	var n policy.Notification
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Send a single notification through the configured push gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger := newLogger(cfg)

			sender := notifications.NewExpoSender(cfg.PushGatewayURL, cfg.PushAccessToken, cfg.DispatchTimeout, logger)
			dispatcher := notifications.NewDispatcher(sender, cfg.DispatchTimeout, 1, logger)
			if err := dispatcher.Send(cmd.Context(), n); err != nil {
				return fmt.Errorf("push to %s: %w", n.Token, err)
			}
			logger.Info("Push sent", "token", n.Token, "title", n.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&n.Token, "token", "", "Device push token")
	cmd.Flags().StringVar(&n.Title, "title", "Screen Nudge", "Notification title")
	cmd.Flags().StringVar(&n.Body, "body", "Test notification", "Notification body")
	cmd.Flags().BoolVar(&n.Vibrate, "vibrate", false, "Play the default sound")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

// --------------------------------------------------------------------------
// quotes command
// --------------------------------------------------------------------------

func quotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quotes",
		Short: "Print the motivation quote corpus",
		Run: func(cmd *cobra.Command, args []string) {
			for i, q := range quotes.Corpus {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, q)
			}
		},
	}
}
