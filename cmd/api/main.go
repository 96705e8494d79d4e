package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ariefcatur/go-commerce-api/internal/catalog"
	"github.com/ariefcatur/go-commerce-api/internal/config"
	"github.com/ariefcatur/go-commerce-api/internal/customers"
	"github.com/ariefcatur/go-commerce-api/internal/httpx"
	kafkax "github.com/ariefcatur/go-commerce-api/internal/kafka"
	"github.com/ariefcatur/go-commerce-api/internal/orders"
	"github.com/ariefcatur/go-commerce-api/internal/postgres"
	"github.com/ariefcatur/go-commerce-api/internal/redisx"
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

	custProd := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicCustomerRegistered, 1024)
	custProd.Start(ctx)
	orderProd := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	orderProd.Start(ctx)

	customerStore := &customers.Repo{DB: db}
	productStore := &catalog.Repo{DB: db}
	orderStore := &orders.Repo{DB: db}

	router := httpx.NewRouter()
	ch := &httpx.CustomersHandler{
		Customers: customers.NewService(customerStore),
		Producer:  custProd,
		Service:   cfg.ServiceName,
	}
	ch.Register(router)
	ph := &httpx.ProductsHandler{
		Catalog: catalog.NewService(productStore),
	}
	ph.Register(router)
	oh := &httpx.OrdersHandler{
		Orders:   orders.NewService(customerStore, productStore, orderStore),
		Producer: orderProd,
		Redis:    rdb,
		Service:  cfg.ServiceName,
	}
	oh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	custProd.Close()
	orderProd.Close()
	custProd.WaitClosed()
	orderProd.WaitClosed()
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.With().Str("service", cfg.ServiceName).Logger()
}
