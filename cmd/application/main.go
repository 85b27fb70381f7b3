package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"storefront_api/config"
	"storefront_api/internal/storefront/app"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/pkg/dbconnect/postgres"
)

func main() {
	log.Printf("\nStarted app\n")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Config file not loaded (%v), falling back to environment", err)
		cfg = &config.AppConfig{Postgres: *config.GetConfig()}
		cfg.Storefront.ApiURL = os.Getenv("STOREFRONT_API_URL")
	}

	session := models.Session{
		Token: os.Getenv("STOREFRONT_TOKEN"),
		Role:  os.Getenv("STOREFRONT_ROLE"),
	}
	if raw := os.Getenv("STOREFRONT_USER_ID"); raw != "" {
		userID, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("invalid STOREFRONT_USER_ID: %v", err)
		}
		session.UserID = userID
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connector := postgres.NewPgConnector(&cfg.Postgres)
	server := app.NewServer(connector, cfg.Storefront, session, os.Stdout)
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("storefront server stopped: %v", err)
	}
}
