// Package cache persists fetched repository lists so repeated visits by the
// same user skip the GitHub round trips.
package cache

import "github.com/kmoroz/repodelve/internal/content"

// Storage is a read-through cache of repository lists keyed by username.
type Storage interface {
	// SaveRepos stores the repository list for a username, replacing any
	// previous entry.
	SaveRepos(username string, repos []content.Repository) error
	// LoadRepos returns the cached list for a username. The bool is false
	// on a cache miss; a miss is not an error.
	LoadRepos(username string) ([]content.Repository, bool, error)
	Close() error
}
