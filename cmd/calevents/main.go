package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/calevents/calevents/internal/profile"
	"github.com/calevents/calevents/server"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "calevents",
	Short: "calevents turns free-form text into calendar invite links",
	Long: `calevents extracts calendar events from free-form text (emails,
tickets, itineraries) using an LLM and serves Google/Outlook/ICS invite
links over HTTP.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return run()
	},
}

func run() error {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	p := &profile.Profile{Version: version}
	p.FromEnv()
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	setupLogger(p)

	if !p.IsLLMConfigured() {
		slog.Warn("no LLM API key configured; extraction requests will fail until CALEVENTS_LLM_API_KEY is set")
	}

	srv := server.NewServer(p)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func setupLogger(p *profile.Profile) {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if p.IsDev() {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
