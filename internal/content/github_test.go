package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

// githubStub serves the two API shapes the fetcher touches: the paged repo
// list and per-repo raw READMEs.
func githubStub(t *testing.T, repoCount int, readmes map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		start := (page - 1) * perPage
		end := start + perPage
		if start > repoCount {
			start = repoCount
		}
		if end > repoCount {
			end = repoCount
		}

		batch := make([]apiRepo, 0, end-start)
		for i := start; i < end; i++ {
			batch = append(batch, apiRepo{
				Name:        fmt.Sprintf("repo-%d", i),
				HTMLURL:     fmt.Sprintf("https://example.com/octocat/repo-%d", i),
				Description: fmt.Sprintf("description %d", i),
			})
		}
		json.NewEncoder(w).Encode(batch)
	})

	mux.HandleFunc("/repos/octocat/", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[len("/repos/octocat/") : len(r.URL.Path)-len("/readme")]
		body, ok := readmes[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})

	return httptest.NewServer(mux)
}

func stubFetcher(srv *httptest.Server) *Fetcher {
	f := NewFetcher("octocat", "")
	f.BaseURL = srv.URL
	f.Client = srv.Client()
	return f
}

func TestFetchReposPaginates(t *testing.T) {
	srv := githubStub(t, perPage+3, nil)
	defer srv.Close()

	repos, err := stubFetcher(srv).FetchRepos(context.Background())
	if err != nil {
		t.Fatalf("FetchRepos: %v", err)
	}
	if len(repos) != perPage+3 {
		t.Fatalf("repo count = %d, want %d", len(repos), perPage+3)
	}
	if repos[0].Title != "repo-0" || repos[perPage].Title != fmt.Sprintf("repo-%d", perPage) {
		t.Errorf("repos out of API order: first=%q, page boundary=%q", repos[0].Title, repos[perPage].Title)
	}
}

func TestFetchReposStopsOnShortPage(t *testing.T) {
	srv := githubStub(t, 5, nil)
	defer srv.Close()

	repos, err := stubFetcher(srv).FetchRepos(context.Background())
	if err != nil {
		t.Fatalf("FetchRepos: %v", err)
	}
	if len(repos) != 5 {
		t.Fatalf("repo count = %d, want 5", len(repos))
	}
	if repos[2].Description != "description 2" {
		t.Errorf("description = %q, want %q", repos[2].Description, "description 2")
	}
}

func TestFetchReposFillsReadmes(t *testing.T) {
	srv := githubStub(t, 3, map[string]string{
		"repo-0": "# Zero\n\nhello",
		"repo-2": "plain text",
	})
	defer srv.Close()

	repos, err := stubFetcher(srv).FetchRepos(context.Background())
	if err != nil {
		t.Fatalf("FetchRepos: %v", err)
	}
	if repos[0].Readme != "# Zero\n\nhello" {
		t.Errorf("readme 0 = %q", repos[0].Readme)
	}
	// A missing README stays empty rather than failing the fetch.
	if repos[1].Readme != "" {
		t.Errorf("readme 1 = %q, want empty", repos[1].Readme)
	}
	if repos[2].Readme != "plain text" {
		t.Errorf("readme 2 = %q", repos[2].Readme)
	}
}

func TestFetchReposUnknownUser(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := stubFetcher(srv).FetchRepos(context.Background())
	if err == nil {
		t.Fatal("unknown user did not error")
	}
	// A 404 is permanent; the backoff loop must not hammer the endpoint.
	if hits != 1 {
		t.Errorf("requests for unknown user = %d, want 1", hits)
	}
}

func TestFetchReposEmptyList(t *testing.T) {
	srv := githubStub(t, 0, nil)
	defer srv.Close()

	repos, err := stubFetcher(srv).FetchRepos(context.Background())
	if err != nil {
		t.Fatalf("FetchRepos: %v", err)
	}
	if len(repos) != 0 {
		t.Errorf("repo count = %d, want 0", len(repos))
	}
}
