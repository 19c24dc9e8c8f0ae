// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bridgeup/bridgeup-backend/internal/aimatch"
	"github.com/bridgeup/bridgeup-backend/internal/bridges"
	"github.com/bridgeup/bridgeup-backend/internal/common/database"
	"github.com/bridgeup/bridgeup-backend/internal/common/utils"
	"github.com/bridgeup/bridgeup-backend/internal/config"
	"github.com/bridgeup/bridgeup-backend/internal/gamification"
	"github.com/bridgeup/bridgeup-backend/internal/interactions"
	"github.com/bridgeup/bridgeup-backend/internal/matching"
	"github.com/bridgeup/bridgeup-backend/internal/realtime"
	"github.com/bridgeup/bridgeup-backend/internal/users"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration validation failed")
	}
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Storage
	var (
		snapshotRepo    bridges.SnapshotRepository
		bridgeRepo      bridges.BridgeRepository
		userRepo        users.Repository
		interactionRepo interactions.Repository
		redisClient     *redis.Client
	)

	if cfg.UseMemoryStore {
		log.Warn().Msg("using in-memory storage")
		memSnapshots := bridges.NewMemorySnapshotRepository()
		snapshotRepo = memSnapshots
		bridgeRepo = bridges.NewMemoryBridgeRepository(memSnapshots)
		userRepo = users.NewMemoryRepository()
		interactionRepo = interactions.NewMemoryRepository()
	} else {
		db, err := database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
		}
		defer db.Close()
		log.Info().Msg("connected to PostgreSQL")

		if err := runMigrations(db); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		snapshotRepo = bridges.NewPostgresSnapshotRepository(db)
		bridgeRepo = bridges.NewPostgresBridgeRepository(db)
		userRepo = users.NewPostgresRepository(db)
		interactionRepo = interactions.NewPostgresRepository(db)

		if cfg.RedisURL != "" {
			redisClient, err = database.NewRedisClient(cfg.RedisURL)
			if err != nil {
				log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
				redisClient = nil
			} else {
				defer redisClient.Close()
				log.Info().Msg("connected to Redis")
			}
		}
	}

	// Engines
	matchingEngine := matching.NewEngine(cfg.ThemeCatalog)
	gamificationEngine := gamification.NewEngine(gamification.DefaultCatalog())

	// Services
	bridgeService := bridges.NewService(snapshotRepo, bridgeRepo, userRepo, matchingEngine)
	interactionService := interactions.NewService(interactionRepo, snapshotRepo, bridgeRepo, redisClient)
	userService := users.NewService(userRepo, snapshotRepo, bridgeRepo, interactionService, gamificationEngine)

	var completer aimatch.TextCompleter
	if cfg.GeminiAPIKey != "" {
		completer = aimatch.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Info().Str("model", cfg.GeminiModel).Msg("Gemini matching enabled")
	}
	aimatchService := aimatch.NewService(completer, nil, nil)

	// Realtime hub
	notificationStore := realtime.NewNotificationStore()
	hub := realtime.NewHub(notificationStore)
	go hub.Run()

	if cfg.EnableSimulator {
		simulator := realtime.NewSimulator(hub,
			cfg.SimulatorInteractionInterval,
			cfg.SimulatorNotificationInterval,
			rand.New(rand.NewSource(time.Now().UnixNano())),
		)
		go simulator.Start(context.Background(), cfg.SimulatorUserID)
	}

	// Routes
	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	bridges.RegisterRoutes(router, bridges.NewHandler(bridgeService))
	interactions.RegisterRoutes(router, interactions.NewHandler(interactionService))
	users.RegisterRoutes(router, users.NewHandler(userService))
	aimatch.RegisterRoutes(router, aimatch.NewHandler(aimatchService))
	realtime.RegisterRoutes(router, realtime.NewHandler(hub, notificationStore))

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received")
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited gracefully")
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	utils.SuccessResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
