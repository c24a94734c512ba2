// Package main is the terminal client: it fetches a GitHub user's
// repositories, generates a dungeon around them, and runs the first-person
// view in the terminal.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/kmoroz/repodelve/data"
	"github.com/kmoroz/repodelve/internal/content"
	"github.com/kmoroz/repodelve/internal/content/cache"
	"github.com/kmoroz/repodelve/internal/game"
	"github.com/kmoroz/repodelve/internal/telemetry"
)

func main() {
	var (
		user       = flag.String("user", "", "GitHub username to explore (empty plays the embedded demo)")
		seed       = flag.Int64("seed", 0, "dungeon seed (0 = random)")
		configPath = flag.String("config", "", "path to a YAML config file")
		cachePath  = flag.String("cache", "", "path to a JSON content cache file (empty disables caching)")
	)
	flag.Parse()

	// Load .env for local development; env vars may also be set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
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
	if *seed != 0 {
		cfg.Seed = *seed
	}

	repos, err := loadContent(ctx, *user, *cachePath)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	g, err := game.New(cfg, repos)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}
	defer g.Close()

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// loadContent resolves the content list: embedded demo data for an empty
// username, otherwise the GitHub API behind an optional JSON file cache.
func loadContent(ctx context.Context, user, cachePath string) ([]content.Repository, error) {
	if user == "" {
		return data.SampleRepos()
	}

	var store cache.Storage
	if cachePath != "" {
		s, err := cache.NewJSONStore(cachePath)
		if err != nil {
			return nil, err
		}
		store = s
		defer store.Close()

		if repos, ok, err := store.LoadRepos(user); err == nil && ok {
			log.Printf("Using cached repositories for %s", user)
			return repos, nil
		}
	}

	fetcher := content.NewFetcher(user, envOr("GITHUB_TOKEN", ""))
	repos, err := fetcher.FetchRepos(ctx)
	if err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.SaveRepos(user, repos); err != nil {
			log.Printf("Warning: writing content cache failed: %v", err)
		}
	}
	return repos, nil
}

// envOr returns the environment variable's value, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
