package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"tarjeta/internal/bot"
	"tarjeta/internal/config"
	"tarjeta/internal/flashcard"
	"tarjeta/internal/store"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Tarjeta bot")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.BotToken == "" {
		logger.Fatal("BOT_TOKEN is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, closeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open word store", zap.Error(err))
	}
	defer closeStore()

	set, src, err := flashcard.LoadWorkingSet(ctx, st, logger)
	if errors.Is(err, flashcard.ErrMissingData) {
		logger.Fatal("No vocabulary to study",
			zap.String("primary", cfg.PrimaryPath),
			zap.String("seed", cfg.SeedPath),
		)
	}
	if err != nil {
		logger.Fatal("Failed to load words", zap.Error(err))
	}
	logger.Info("Working set loaded",
		zap.Int("words", set.Len()),
		zap.Stringer("source", src),
	)

	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	h := bot.NewHandler(b, set, logger,
		flashcard.WithFlipDelay(cfg.FlipDelay),
		flashcard.WithLogger(logger),
	)
	h.Register(b, cfg.BotOwnerID)
	if cfg.BotOwnerID != 0 {
		logger.Info("Bot restricted to owner", zap.Int64("owner_id", cfg.BotOwnerID))
	}

	go func() {
		logger.Info("Bot started successfully")
		b.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")
	b.Stop()
	h.Close()
	logger.Info("Bot stopped gracefully")
}
