package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/kmoroz/repodelve/internal/content"
)

// PostgresStore caches repository lists in a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL and ensures the cache table exists.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS content_cache (
		username TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		fetched_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRepos upserts the repository list for a username.
func (s *PostgresStore) SaveRepos(username string, repos []content.Repository) error {
	payload, err := json.Marshal(repos)
	if err != nil {
		return fmt.Errorf("marshaling repos: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO content_cache (username, payload, fetched_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (username)
		DO UPDATE SET payload = EXCLUDED.payload, fetched_at = NOW()`,
		username, payload)
	return err
}

// LoadRepos returns the cached list for a username, if present.
func (s *PostgresStore) LoadRepos(username string) ([]content.Repository, bool, error) {
	var payload []byte
	err := s.db.QueryRow(
		`SELECT payload FROM content_cache WHERE username = $1`, username,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var repos []content.Repository
	if err := json.Unmarshal(payload, &repos); err != nil {
		return nil, false, fmt.Errorf("unmarshaling cached repos: %w", err)
	}
	return repos, true, nil
}

// Close releases the database connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
