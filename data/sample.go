package data

import "github.com/kmoroz/repodelve/internal/content"

// sampleFile represents the structure of sample_repos.json.
type sampleFile struct {
	Repos []content.Repository `json:"repos"`
}

// SampleRepos loads the embedded demo repository list, used when no GitHub
// username is given so the game works offline.
func SampleRepos() ([]content.Repository, error) {
	file, err := Load[sampleFile]("sample_repos.json")
	if err != nil {
		return nil, err
	}
	return file.Repos, nil
}

// MustSampleRepos loads the demo repository list, panicking on error.
func MustSampleRepos() []content.Repository {
	repos, err := SampleRepos()
	if err != nil {
		panic(err)
	}
	return repos
}
