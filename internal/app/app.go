// Package app assembles the assistant from configuration. Both binaries
// share it.
package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/bot"
	"github.com/ruralpay/assistant/internal/cognitive"
	"github.com/ruralpay/assistant/internal/config"
	"github.com/ruralpay/assistant/internal/dialogs"
	"github.com/ruralpay/assistant/internal/models"
	"github.com/ruralpay/assistant/internal/speech"
	"github.com/ruralpay/assistant/internal/store"
	"github.com/ruralpay/assistant/internal/telemetry"
)

// App holds the wired components and what must be closed on shutdown.
type App struct {
	Config      *config.Config
	Dialog      *config.DialogConfig
	Bot         *bot.Bot
	Store       store.SessionStore
	Transcriber speech.Transcriber
	Telemetry   *telemetry.Client
	closers     []io.Closer
}

// New builds the store, the cognitive clients, the dialogs and the bot.
func New(ctx context.Context, cfg *config.Config, dialogCfg *config.DialogConfig, logger *zap.Logger) (*App, error) {
	tc := telemetry.NewClient(logger)

	st, err := store.Open(ctx, cfg.Storage, dialogCfg.SessionTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	a := &App{Config: cfg, Dialog: dialogCfg, Store: st, Telemetry: tc, closers: []io.Closer{st}}

	recognizer := cognitive.NewLUISRecognizer(cfg.LUIS, logger)
	if !recognizer.IsConfigured() {
		logger.Warn("LUIS is not configured; every conversation goes straight to the transaction flow")
	}
	qna := cognitive.NewQnAMakerClient(cfg.QnA, logger)
	sentiment, err := cognitive.NewSentimentAnalyzer(ctx, cfg.TextAnalytics, cfg.Gemini, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("sentiment analyzer: %w", err)
	}

	dialog := dialogs.NewMainDialog(dialogCfg, recognizer, qna, sentiment, tc, logger)
	a.Bot = bot.New(dialog, st, models.DefaultSeed(), tc, logger)

	a.Transcriber = speech.Unconfigured()
	if cfg.SpeechEnabled {
		a.Transcriber = speech.NewTranscriber(ctx, logger)
		if c, ok := a.Transcriber.(io.Closer); ok {
			a.closers = append(a.closers, c)
		}
	}

	logger.Info("assistant assembled",
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("luis", cfg.LUIS.Configured()),
		zap.Bool("qna", cfg.QnA.Configured()),
		zap.Bool("speech", cfg.SpeechEnabled),
	)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
