package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/grabbit-dl/grabbit/internal/bot"
	"github.com/grabbit-dl/grabbit/internal/config"
	"github.com/grabbit-dl/grabbit/internal/deliver"
	"github.com/grabbit-dl/grabbit/internal/server"
	"github.com/grabbit-dl/grabbit/internal/util"
)

func main() {
	godotenv.Load()
	util.InitLogger(os.Getenv("GRABBIT_LOG_LEVEL"))

	cfgPath := os.Getenv("GRABBIT_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	util.InitLogger(cfg.Logging.Level)

	util.ClearTempDir(cfg.Media.TempDir)

	uploader, err := newUploader(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up uploader")
	}

	b, err := bot.New(cfg, uploader)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	srv := server.New(cfg, b.Ready)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("status server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("status server failed")
		}
	}()

	if err := b.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start bot")
	}
	log.Info().Msg("bot is running, press ctrl+c to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	b.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

func newUploader(cfg *config.Config) (deliver.Uploader, error) {
	switch cfg.Delivery.Backend {
	case "s3":
		ttl := time.Duration(cfg.Delivery.LinkTTLHours) * time.Hour
		return deliver.NewS3Uploader(context.Background(), cfg.Delivery.S3Bucket, cfg.Delivery.S3Prefix, ttl)
	default:
		return &deliver.PutUploader{Endpoint: cfg.Delivery.UploadEndpoint}, nil
	}
}
