package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fairwaygolf/member-import/internal/bootstrap"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	// The ARMember tables live in the WordPress database; they default
	// to the service database when a replica is co-located.
	sourceURL := getEnv("ARMEMBER_DATABASE_URL", databaseURL)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	memberPool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("failed to create member pgx pool: %v", err)
	}
	defer memberPool.Close()

	sourcePool := memberPool
	if sourceURL != databaseURL {
		sourcePool, err = pgxpool.New(context.Background(), sourceURL)
		if err != nil {
			log.Fatalf("failed to create armember pgx pool: %v", err)
		}
		defer sourcePool.Close()
	}

	server := bootstrap.NewHTTPServer(db, memberPool, sourcePool, bootstrap.Config{
		ImportPageSize:     parseIntEnv("IMPORT_PAGE_SIZE", 50),
		ImportPreviewLimit: parseIntEnv("IMPORT_PREVIEW_LIMIT", 25),
	})

	go func() {
		if err := server.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}

func parseIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
