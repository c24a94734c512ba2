// Package content fetches the repository records that door tiles are bound
// to. The game core never calls into this package; it only consumes the
// resulting list.
package content

// Repository is one content item: a repository record fetched from GitHub.
// The field order is the order doors consume the list in.
type Repository struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Readme      string `json:"readme,omitempty"`
}
