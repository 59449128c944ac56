package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"smartsociety/backend/internal/config"
	"smartsociety/backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	ctx := context.Background()

	// Redis only carries profile change notifications here; without it the
	// running API servers pick changes up on the next request.
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("WARN: Redis unavailable, profile changes will not be broadcast: %v", err)
		rdb.Close()
		rdb = nil
	} else {
		defer rdb.Close()
	}

	storageSvc := storage.NewStorageService(db, rdb)

	if err := run(ctx, storageSvc, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(1)
		}
		log.Fatalf("Error: %v", err)
	}
}
