// Package main is the server entry point: it serves generated dungeons and
// interactive sessions over HTTP and WebSocket.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/kmoroz/repodelve/internal/content/cache"
	"github.com/kmoroz/repodelve/internal/game"
	"github.com/kmoroz/repodelve/internal/server"
	"github.com/kmoroz/repodelve/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Server will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := openStore()
	if err != nil {
		log.Fatalf("Failed to initialize content cache: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	srv := server.New(cfg, store, os.Getenv("GITHUB_TOKEN"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, srv.Handler()))
}

// openStore selects the content cache backend from the environment:
// DB_TYPE=postgres uses DATABASE_URL, DB_TYPE=none disables caching, and
// everything else uses a JSON file at DB_FILE.
func openStore() (cache.Storage, error) {
	switch os.Getenv("DB_TYPE") {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			dsn = "host=localhost user=repodelve password=repodelve dbname=repodelve sslmode=disable"
		}
		log.Println("Using PostgreSQL content cache")
		return cache.NewPostgresStore(dsn)
	case "none":
		log.Println("Content caching disabled")
		return nil, nil
	default:
		file := os.Getenv("DB_FILE")
		if file == "" {
			file = "content_cache.json"
		}
		log.Println("Using JSON content cache")
		return cache.NewJSONStore(file)
	}
}
