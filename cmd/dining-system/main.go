package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dining-system/internal/common/logger"
	"dining-system/internal/config"
	"dining-system/internal/connections/database"
	"dining-system/internal/connections/rabbitmq"
	"dining-system/internal/microservices/dining"
	"dining-system/internal/microservices/kitchen"
	"dining-system/internal/microservices/notificator"
)

func main() {
	mode := flag.String("mode", "", "dining-service | kitchen-service | notification-subscriber")
	port := flag.Int("port", 0, "http port for services that expose HTTP")
	cfgPath := flag.String("config", "config.yml", "path to YAML config")
	flag.Parse()

	lg := logger.New("bootstrap")

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		lg.Error("config_load_failed", err, nil)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "dining-service":
		if *port == 0 {
			*port = 3000
		}
		db, err := database.ConnectDB(ctx, cfg.Database)
		if err != nil {
			lg.Error("db_connect_failed", err, nil)
			os.Exit(1)
		}
		defer db.Close()

		rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			lg.Error("rabbitmq_connect_failed", err, nil)
			os.Exit(1)
		}
		defer rmq.Close()
		if err := rmq.DeclareTopology(); err != nil {
			lg.Error("rabbitmq_declare_failed", err, nil)
			os.Exit(1)
		}

		lg.Info("service_started", map[string]any{"service": "dining-service", "port": *port})
		if err := dining.Run(ctx, *port, db, rmq, cfg.Branch); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}

	case "kitchen-service":
		if *port == 0 {
			*port = 3001
		}
		db, err := database.ConnectDB(ctx, cfg.Database)
		if err != nil {
			lg.Error("db_connect_failed", err, nil)
			os.Exit(1)
		}
		defer db.Close()

		lg.Info("service_started", map[string]any{"service": "kitchen-service", "port": *port})
		if err := kitchen.Run(ctx, *port, db); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}

	case "notification-subscriber":
		rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			lg.Error("rabbitmq_connect_failed", err, nil)
			os.Exit(1)
		}
		defer rmq.Close()
		if err := rmq.DeclareTopology(); err != nil {
			lg.Error("rabbitmq_declare_failed", err, nil)
			os.Exit(1)
		}

		lg.Info("service_started", map[string]any{"service": "notification-subscriber"})
		if err := notificator.Run(ctx, rmq); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "--mode is required: dining-service | kitchen-service | notification-subscriber")
		os.Exit(2)
	}
}
