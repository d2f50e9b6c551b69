package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"quantaroute-demo/internal/adapters/repositories"
	"quantaroute-demo/internal/config"
	"quantaroute-demo/internal/platform/db"
	"quantaroute-demo/internal/platform/logger"
)

func main() {
	prune := flag.Duration("prune", 0, "delete route history older than this (e.g. 720h); 0 keeps everything")
	flag.Parse()

	envErr := godotenv.Load()
	log := logger.SetupWith(os.Stderr, config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "text"))
	if envErr != nil {
		log.Info("no .env file found, using environment variables")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Error("open database", "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	log.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Error("schema initialization failed", "err", err)
		os.Exit(1)
	}
	log.Info("schema ready")

	if *prune > 0 {
		n, err := repositories.NewPostgresRouteHistory(conn).Prune(ctx, time.Now().Add(-*prune))
		if err != nil {
			log.Error("prune failed", "err", err)
			os.Exit(1)
		}
		log.Info("pruned route history", "removed", n, "older_than", prune.String())
	}
}
