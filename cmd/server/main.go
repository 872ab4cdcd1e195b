package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/app"
	"github.com/ruralpay/assistant/internal/channel"
	"github.com/ruralpay/assistant/internal/config"
	mW "github.com/ruralpay/assistant/internal/middleware"
	"github.com/ruralpay/assistant/internal/services"
	"github.com/ruralpay/assistant/internal/telemetry"
)

// @title RuralPay Banking Assistant API
// @version 1.0
// @description Conversational banking assistant: activities in, bot replies out
// @BasePath /api
// @schemes http https

func main() {
	cfg := config.Load()
	dialogCfg := config.LoadDialogConfig()

	logger, err := telemetry.NewLogger(cfg.LogLevel, cfg.Env == "development")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	assistant, err := app.New(ctx, cfg, dialogCfg, logger)
	if err != nil {
		logger.Fatal("failed to start assistant", zap.Error(err))
	}
	defer assistant.Close()

	messagingService := services.NewMessagingService(assistant.Bot, logger)
	voiceService := services.NewVoiceService(assistant.Transcriber, assistant.Bot, logger)
	qrService := services.NewQRService(dialogCfg.LoginURL, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(mW.CORS(cfg.CORSOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(cfg.PublicURL+"/openapi.yaml"),
	))

	// Serve OpenAPI document
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yaml")
	})

	// Card images
	r.Handle("/static/*", http.StripPrefix("/static/", mW.StaticFileServer("./static")))

	r.Route("/api", func(r chi.Router) {
		r.Get("/login/qr", qrService.LoginQR)

		r.Group(func(r chi.Router) {
			r.Use(mW.NewAuthMiddleware(cfg.AppID, cfg.AppPassword))

			r.Post("/messages", messagingService.ProcessMessage)
			r.Post("/voice/messages", voiceService.ProcessVoiceMessage)
		})
	})

	if cfg.Telegram.Token != "" {
		tg, err := channel.NewTelegram(cfg.Telegram.Token, cfg.Telegram.Debug, assistant.Bot, logger)
		if err != nil {
			logger.Error("telegram channel disabled", zap.Error(err))
		} else {
			go tg.Run(ctx)
		}
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
