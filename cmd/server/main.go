package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"quantaroute-demo/internal/adapters/cache"
	"quantaroute-demo/internal/adapters/geocode"
	"quantaroute-demo/internal/adapters/quantaroute"
	"quantaroute-demo/internal/adapters/repositories"
	"quantaroute-demo/internal/api"
	"quantaroute-demo/internal/config"
	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/platform/db"
	"quantaroute-demo/internal/platform/logger"
	"quantaroute-demo/internal/ports"
	"quantaroute-demo/internal/services"
)

const (
	sessionIdle     = 2 * time.Hour
	sweepInterval   = 10 * time.Minute
	memoryHistoryN  = 50
	shutdownTimeout = 10 * time.Second
)

// main is the application composition root.
// It wires concrete adapters (QuantaRoute, Redis, Postgres, Google) behind
// ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.L().Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.SetupWith(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Info("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := cfg.Backend()
	backend, err := quantaroute.NewClient(settings)
	if err != nil {
		log.Error("quantaroute client", "err", err)
		os.Exit(1)
	}

	opts := []services.CalculatorOption{}

	if rdb := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, route cache disabled", "addr", cfg.RedisAddr, "err", err)
		} else {
			opts = append(opts, services.WithCache(cache.NewRedisRouteCache(rdb, cfg.RouteCacheTTL)))
			log.Info("route cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.RouteCacheTTL)
		}
	}

	conn := openDatabase(ctx, cfg)
	if conn != nil {
		defer closeDB(conn)
	}

	var history ports.RouteHistory = repositories.NewMemoryRouteHistory(memoryHistoryN)
	if conn != nil {
		history = repositories.NewPostgresRouteHistory(conn)
	}
	opts = append(opts, services.WithHistory(history))

	var geocoder ports.Geocoder
	if cfg.GoogleMapsKey != "" {
		g, err := geocode.NewGoogleGeocoder(cfg.GoogleMapsKey)
		if err != nil {
			log.Warn("geocoder disabled", "err", err)
		} else {
			geocoder = g
			if conn != nil {
				geocoder = geocode.NewCachedGeocoder(g, cache.NewSQLGeocodeCache(conn))
			}
		}
	}

	sessions := services.NewSessionStore(domain.ParseProfile(cfg.DefaultProfile))
	go sweepSessions(ctx, sessions)

	router := api.NewRouter(api.Deps{
		Backend:    backend,
		Settings:   settings,
		Sessions:   sessions,
		Calculator: services.NewCalculator(backend, opts...),
		Locator:    services.NewLocator(geocoder),
		History:    history,
	})

	// Write timeout leaves room for the backend timeout plus retries.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Timeout*2 + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", "err", err)
		}
	}()

	log.Info("server listening", "addr", srv.Addr, "mode", settings.Mode, "api_url", settings.BaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server", "err", err)
		os.Exit(1)
	}
}

// openDatabase connects to Postgres and makes sure the schema exists. It
// returns nil when DATABASE_URL is unset or unusable; history then stays in
// memory and geocoding is not cached.
func openDatabase(ctx context.Context, cfg *config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.L().Warn("postgres unavailable, keeping history in memory", "err", err)
		return nil
	}
	if err := repositories.InitSchema(ctx, conn); err != nil {
		logger.L().Warn("postgres schema, keeping history in memory", "err", err)
		closeDB(conn)
		return nil
	}
	return conn
}

func closeDB(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logger.L().Warn("close database", "err", err)
	}
}

func sweepSessions(ctx context.Context, store *services.SessionStore) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := store.Sweep(now.Add(-sessionIdle)); n > 0 {
				logger.L().Info("swept idle sessions", "removed", n, "remaining", store.Len())
			}
		}
	}
}
