package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"smartsociety/backend/internal/account"
	"smartsociety/backend/internal/analysis"
	"smartsociety/backend/internal/api/handler"
	"smartsociety/backend/internal/auth"
	"smartsociety/backend/internal/complaint"
	"smartsociety/backend/internal/config"
	"smartsociety/backend/internal/localization"
	"smartsociety/backend/internal/statehub"
	"smartsociety/backend/internal/storage"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(ctx context.Context, cfg *config.Config) (*gorm.DB, *redis.Client) {
	// TranslateError turns unique-index violations into gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	log.Println("INFO: Database and Redis connections established.")
	return db, rdb
}

func loadLocalizer(dir string) *localization.Localizer {
	l, err := localization.NewLocalizer(dir)
	if err != nil {
		log.Printf("WARN: %v; using the built-in catalogue", err)
		return localization.NewDefaultLocalizer()
	}
	return l
}

func main() {
	log.Println("Starting SmartSociety resident API...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, rdb := setupDependencies(ctx, cfg)
	s := storage.NewStorageService(db, rdb)
	if err := s.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	authSvc := auth.NewService(s, auth.Options{
		Secret:        cfg.JWT.Secret,
		Issuer:        cfg.JWT.Issuer,
		TTL:           cfg.JWT.TTL,
		MaxAttempts:   cfg.Login.MaxAttempts,
		AttemptWindow: cfg.Login.AttemptWindow,
	})
	accounts := account.NewService(authSvc, s)
	workflow := complaint.NewService(s)
	dashboards := analysis.NewService(s)

	hub := statehub.NewManager(s)
	go hub.Run(ctx)

	h := handler.NewHandler(accounts, authSvc, workflow, dashboards, s, s, hub, loadLocalizer(cfg.LocalizationDir))
	r := handler.NewRouter(h, cfg.AllowedOrigins())

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("INFO: Listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("INFO: Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Graceful shutdown failed: %v", err)
	}
	if err := rdb.Close(); err != nil {
		log.Printf("WARN: Closing Redis: %v", err)
	}
}
