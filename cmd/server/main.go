package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microexchange/broadcast"
	"microexchange/config"
	"microexchange/domain"
	"microexchange/exchange"
	"microexchange/httpapi"
	"microexchange/orderbook"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("read config failed", "path", configPath, "error", err)
		os.Exit(1)
	}

	kind, err := orderbook.ParseIndexKind(cfg.Index)
	if err != nil {
		logger.Error("invalid index kind", "index", cfg.Index, "error", err)
		os.Exit(1)
	}

	symbols := make([]domain.Symbol, 0, len(cfg.Symbols))
	for _, s := range cfg.Symbols {
		symbols = append(symbols, domain.Symbol(s))
	}
	ex := exchange.New(kind, symbols...)
	logger.Info("exchange started", "symbols", cfg.Symbols, "index", cfg.Index)

	var publisher broadcast.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := broadcast.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
		logger.Info("execution reports enabled",
			"brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	api := httpapi.NewServer(ex, publisher, logger)
	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: api.Routes(),
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server exiting")
}
