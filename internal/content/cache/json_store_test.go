package cache

import (
	"path/filepath"
	"testing"

	"github.com/kmoroz/repodelve/internal/content"
)

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	repos := []content.Repository{
		{Title: "alpha", URL: "https://example.com/alpha", Description: "first", Readme: "# Alpha"},
		{Title: "beta", URL: "https://example.com/beta"},
	}
	if err := store.SaveRepos("octocat", repos); err != nil {
		t.Fatalf("SaveRepos: %v", err)
	}

	// Reopen from disk to prove the save actually flushed.
	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	got, ok, err := reopened.LoadRepos("octocat")
	if err != nil {
		t.Fatalf("LoadRepos: %v", err)
	}
	if !ok {
		t.Fatal("saved entry missing after reopen")
	}
	if len(got) != 2 || got[0].Title != "alpha" || got[0].Readme != "# Alpha" {
		t.Errorf("loaded repos = %+v", got)
	}
}

func TestJSONStoreMiss(t *testing.T) {
	store, err := NewJSONStore(filepath.Join(t.TempDir(), "cache.json"))
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	_, ok, err := store.LoadRepos("nobody")
	if err != nil {
		t.Fatalf("LoadRepos: %v", err)
	}
	if ok {
		t.Error("miss reported as a hit")
	}
}
