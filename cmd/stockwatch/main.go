package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ariefcatur/go-commerce-api/internal/catalog"
	"github.com/ariefcatur/go-commerce-api/internal/config"
	kafkax "github.com/ariefcatur/go-commerce-api/internal/kafka"
	"github.com/ariefcatur/go-commerce-api/internal/orders"
	"github.com/ariefcatur/go-commerce-api/internal/postgres"
	"github.com/ariefcatur/go-commerce-api/internal/redisx"
	"github.com/ariefcatur/go-commerce-api/internal/stockwatch"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	lowProd := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicStockLow, 1024)
	lowProd.Start(ctx)

	svc := &stockwatch.Service{
		Products:    &catalog.Repo{DB: db},
		Redis:       rdb,
		Producer:    lowProd,
		Threshold:   cfg.LowStockThreshold,
		ServiceName: cfg.ServiceName + "-stockwatch",
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.WatchGroup, orders.TopicOrderPlaced, cfg.WatchWorkers)

	go func() {
		log.Info().
			Str("group", cfg.WatchGroup).
			Str("topic", orders.TopicOrderPlaced).
			Int("workers", cfg.WatchWorkers).
			Msg("stockwatch consumer started")
		if err := cons.Start(ctx, svc.HandleOrderPlaced); err != nil {
			log.Error().Err(err).Msg("consumer exit")
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
	lowProd.WaitClosed()
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.With().Str("service", cfg.ServiceName + "-stockwatch").Logger()
}
