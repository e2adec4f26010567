package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/arclab/arclab-api/internal/api"
	"github.com/arclab/arclab-api/internal/core/ports"
	"github.com/arclab/arclab-api/internal/infrastructure/config"
	arcmongo "github.com/arclab/arclab-api/internal/infrastructure/db/mongo"
	arcredis "github.com/arclab/arclab-api/internal/infrastructure/db/redis"
	"github.com/arclab/arclab-api/internal/infrastructure/mail"
	"github.com/arclab/arclab-api/internal/infrastructure/provider"
	"github.com/arclab/arclab-api/internal/infrastructure/queue"
	"github.com/arclab/arclab-api/pkg/logger"
)

const providerCallTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := arcmongo.Connect(ctx, arcmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := arcmongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := arcredis.Connect(ctx, arcredis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Mail pipeline ---
	mailer, err := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("smtp client failed")
	}

	dispatcher := queue.NewDispatcher(cfg.MailWorkers, mailer, arcredis.NewSentMailGuard(rdb), log)
	dispatcher.Start(ctx)

	// --- AI providers ---
	// Constructed once here and passed by reference; no package-level client state.
	var generator ports.TextGenerator
	var synthesizer ports.SpeechSynthesizer
	openAI := provider.NewOpenAIProvider(provider.Config{
		APIKey:    cfg.OpenAI.APIKey,
		ChatModel: cfg.OpenAI.ChatModel,
		TTSModel:  cfg.OpenAI.TTSModel,
		BaseURL:   cfg.OpenAI.BaseURL,
	})
	generator = openAI
	synthesizer = openAI

	e := api.NewRouter(db, rdb, api.Dependencies{
		JWTSecret:   cfg.JWTSecret,
		Mail:        dispatcher,
		Generator:   generator,
		Synthesizer: synthesizer,
		CallTimeout: providerCallTimeout,
		Logger:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("arclab api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
