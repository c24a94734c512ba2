package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kmoroz/repodelve/internal/telemetry"
)

const (
	defaultBaseURL = "https://api.github.com"
	perPage        = 100

	// readmeWorkers bounds the concurrent README downloads.
	readmeWorkers = 8

	maxFetchTries = 4
)

// Fetcher retrieves a user's public repositories from the GitHub API.
type Fetcher struct {
	Username string
	BaseURL  string // overridable for tests
	Token    string // optional; raises the API rate limit
	Client   *http.Client
}

// NewFetcher creates a fetcher for the given GitHub username. An empty
// token is fine for light use; GitHub only rate-limits harder.
func NewFetcher(username, token string) *Fetcher {
	return &Fetcher{
		Username: username,
		BaseURL:  defaultBaseURL,
		Token:    token,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchRepos pages through the user's repositories and returns them in API
// order, each with its README body filled in best-effort. A user with no
// repositories yields an empty list, not an error. Transient failures are
// retried with exponential backoff.
func (f *Fetcher) FetchRepos(ctx context.Context) ([]Repository, error) {
	tracer := telemetry.Tracer("content")
	ctx, span := tracer.Start(ctx, "github.fetch_repos")
	defer span.End()

	var repos []Repository
	for page := 1; ; page++ {
		batch, err := backoff.Retry(ctx, func() ([]Repository, error) {
			return f.fetchPage(ctx, page)
		}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxFetchTries))
		if err != nil {
			return nil, fmt.Errorf("fetching repos for %s: %w", f.Username, err)
		}

		repos = append(repos, batch...)
		if len(batch) < perPage {
			break
		}
	}

	f.fillReadmes(ctx, repos)

	span.SetAttributes(
		attribute.String("github.username", f.Username),
		attribute.Int("github.repo_count", len(repos)),
	)
	return repos, nil
}

// apiRepo is the subset of the GitHub repository payload we keep.
type apiRepo struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
}

// fetchPage retrieves one page of the user's repository list.
func (f *Fetcher) fetchPage(ctx context.Context, page int) ([]Repository, error) {
	url := fmt.Sprintf("%s/users/%s/repos?page=%d&per_page=%d", f.BaseURL, f.Username, page, perPage)
	body, status, err := f.get(ctx, url, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		// Unknown user never becomes reachable by retrying.
		return nil, backoff.Permanent(fmt.Errorf("github user %q not found", f.Username))
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("github repos request returned %d", status)
	}

	var raw []apiRepo
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decoding repos page %d: %w", page, err))
	}

	repos := make([]Repository, 0, len(raw))
	for _, r := range raw {
		repos = append(repos, Repository{
			Title:       r.Name,
			URL:         r.HTMLURL,
			Description: r.Description,
		})
	}
	return repos, nil
}

// fillReadmes downloads README bodies with a small worker pool. Failures
// leave the Readme field empty; a repository without a readable README is
// normal, not an error.
func (f *Fetcher) fillReadmes(ctx context.Context, repos []Repository) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, readmeWorkers)

	for i := range repos {
		wg.Add(1)
		sem <- struct{}{}
		go func(r *Repository) {
			defer wg.Done()
			defer func() { <-sem }()

			url := fmt.Sprintf("%s/repos/%s/%s/readme", f.BaseURL, f.Username, r.Title)
			body, status, err := f.get(ctx, url, "application/vnd.github.raw+json")
			if err == nil && status == http.StatusOK {
				r.Readme = string(body)
			}
		}(&repos[i])
	}
	wg.Wait()
}

// get performs an authenticated GET and returns the body and status code.
func (f *Fetcher) get(ctx context.Context, url, accept string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", accept)
	if f.Token != "" {
		req.Header.Set("Authorization", "Bearer "+f.Token)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
