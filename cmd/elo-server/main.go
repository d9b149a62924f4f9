package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/utakatalp/league-elo/internal/api"
	"github.com/utakatalp/league-elo/internal/config"
	"github.com/utakatalp/league-elo/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (default: search ./configs and . for config.yaml)")
	flag.Parse()

	var (
		cfg config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logging.Init(cfg.LogLevel, cfg.LogDevelopment); err != nil {
		log.Fatalf("failed to init logging: %v", err)
	}
	defer logging.Sync()

	logging.Info("starting elo server",
		zap.String("version", api.Version),
		zap.Float64("sensitivity", cfg.Elo.Sensitivity),
		zap.Float64("home_advantage", cfg.Elo.HomeAdvantage),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.NewServer(cfg).Start(ctx); err != nil {
		logging.Fatal("elo server exited", zap.Error(err))
	}
	logging.Info("exiting cleanly")
}
