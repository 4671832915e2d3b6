// Package testutil provides shared testing utilities and fixtures
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Query file fixtures shared by the loader, CLI, MCP and Lambda tests
const (
	// FullQueryYAML sets every filter group
	FullQueryYAML = `include_genres: [comedy, drama]
exclude_genres: [horror]
min_votes: 1000
max_votes: null
min_rating: 7
max_rating: 10
start_date: 2000-01-01
end_date: 2023-12-31
include_countries: [United States]
exclude_countries: []
min_runtime: 90
max_runtime:
sort_type: user_rating
sort_option: desc
title_type: [feature]
exclude_keywords: [zombie, remake]
`

	// FullQueryURL is what FullQueryYAML builds to, without suffixes
	FullQueryURL = "https://www.imdb.com/search/title/?" +
		"genres=comedy,drama,!horror" +
		"&num_votes=1000," +
		"&user_rating=7.0,10.0" +
		"&release_date=2000-01-01,2023-12-31" +
		"&countries=US" +
		"&runtime=90," +
		"&sort=user_rating,desc" +
		"&title_type=feature"

	// FullQuerySuffix is the keywords and awards tail for FullQueryYAML
	FullQuerySuffix = "&keywords=!zombie,!remake&has=awards"

	// NullQueryYAML lists every key without a value
	NullQueryYAML = `include_genres:
exclude_genres:
min_votes:
max_votes:
min_rating:
max_rating:
start_date:
end_date:
include_countries:
exclude_countries:
min_runtime:
max_runtime:
sort_type:
sort_option:
title_type:
exclude_keywords:
`

	// InvalidGenreQueryYAML fails validation on the genre group
	InvalidGenreQueryYAML = `include_genres: [comedy, slapstick]
`
)

// WriteQueryFile writes content to a query file in a temp dir and returns its path
func WriteQueryFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "search_query.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing query file: %v", err)
	}
	return path
}
