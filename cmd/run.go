package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nextwavelab/lingorelay/internal/channels/discord"
	"github.com/nextwavelab/lingorelay/internal/config"
	"github.com/nextwavelab/lingorelay/internal/deepl"
	"github.com/nextwavelab/lingorelay/internal/relay"
	"github.com/nextwavelab/lingorelay/internal/tracing"
)

func runRelay() {
	// Setup structured logging
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Load config
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, cfg.Telemetry)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}

	client := deepl.New(cfg.DeepL.APIKey, cfg.DeepL.APIBase)
	translator := relay.TranslateFunc(func(ctx context.Context, text, targetLang string) ([]relay.Translation, error) {
		results, err := client.Translate(ctx, text, targetLang)
		if err != nil {
			return nil, err
		}
		out := make([]relay.Translation, len(results))
		for i, t := range results {
			out[i] = relay.Translation{Text: t.Text, DetectedSourceLang: t.DetectedSourceLanguage}
		}
		return out, nil
	})

	defaults := relay.LanguageConfig{
		DefaultLang: cfg.Languages.Default,
		TargetLang:  cfg.Languages.Target,
	}

	channel, err := discord.New(cfg.Discord.Token, translator, defaults)
	if err != nil {
		slog.Error("failed to create discord channel", "error", err)
		os.Exit(1)
	}

	if err := channel.Start(ctx); err != nil {
		slog.Error("failed to start discord channel", "error", err)
		os.Exit(1)
	}

	slog.Info("relay running",
		"default_lang", defaults.DefaultLang,
		"target_lang", defaults.TargetLang,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("graceful shutdown initiated", "signal", sig)
	cancel()

	if err := channel.Stop(context.Background()); err != nil {
		slog.Warn("discord channel stop failed", "error", err)
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := shutdownTracing(flushCtx); err != nil {
		slog.Warn("trace exporter shutdown failed", "error", err)
	}
}
