package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"healbot/internal/config"
	"healbot/internal/core"
	"healbot/internal/db"
	httpserver "healbot/internal/http"
	"healbot/internal/llm"
	"healbot/internal/logging"
	"healbot/internal/speech"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	logging.Init(cfg.Environment)

	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		slog.Error("open database", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbConn.PingContext(pingCtx); err != nil {
		slog.Error("ping database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(context.Background(), dbConn); err != nil {
		slog.Error("run migrations", "error", err)
		os.Exit(1)
	}
	repo := db.NewRepository(dbConn)

	model := llm.NewGroqClient(cfg.GroqAPIKey, cfg.ChatModel, cfg.GroqBaseURL)

	var assembler core.Assembler
	switch cfg.PromptMode {
	case "transcript":
		assembler = &core.TranscriptAssembler{}
	default:
		assembler = &core.MessageAssembler{}
	}
	chat := core.NewChatService(repo, model, assembler, float32(cfg.ChatTemperature), cfg.ChatMaxTokens)

	srv := &httpserver.Server{
		Store:         repo,
		Chat:          chat,
		Transcriber:   speech.NewWhisperClient(cfg.GroqAPIKey, cfg.WhisperModel, ""),
		Synthesizer:   speech.NewTranslateTTS(cfg.TTSBaseURL),
		MaxAudioBytes: cfg.MaxAudioBytes,
		SpeechLimiter: httpserver.NewIPRateLimiter(cfg.SpeechRatePerSecond, cfg.SpeechRateBurst),
	}

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      srv.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // chat and speech calls can be slow
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", addr, "prompt_mode", cfg.PromptMode, "model", cfg.ChatModel)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
