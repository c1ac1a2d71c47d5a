package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	config "github.com/xilidan/audio-transcriber/config/transcribe"
	"github.com/xilidan/audio-transcriber/gateways/transcribe"
	"github.com/xilidan/audio-transcriber/pkg/logger"
)

func main() {
	log := logger.Default()
	log.Info("loading configuration")
	cfg := config.MustLoad()

	log = logger.New(logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		Output:     os.Stderr,
		AddSource:  true,
		JSONFormat: cfg.Log.JSON,
	})
	logger.SetDefault(log)
	log.Info("configuration loaded successfully",
		slog.Int("port", cfg.Port),
		slog.String("profile", cfg.Profile),
		slog.Bool("openai_key_configured", cfg.OpenAI.APIKeyConfigured()))

	ctx := logger.WithContext(context.Background(), log)

	rootCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(rootCtx, cfg, log); err != nil {
		log.Error("failed to run()", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	srv, err := transcribe.New(cfg, log)
	if err != nil {
		log.Error("failed to create server", slog.String("error", err.Error()))
		return err
	}

	return srv.Start(ctx)
}
