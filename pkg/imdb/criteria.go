// Package imdb validates search filter criteria and serializes them into an
// IMDb advanced title search URL.
package imdb

import "sort"

// FilterCriteria holds every constraint of one title search.
// Nil pointers and empty strings or slices mean the filter is not set.
type FilterCriteria struct {
	IncludeGenres []string
	ExcludeGenres []string

	MinVotes *int
	MaxVotes *int

	MinRating *float64
	MaxRating *float64

	// StartDate and EndDate use the YYYY-MM-DD form
	StartDate string
	EndDate   string

	// IncludeCountries and ExcludeCountries hold country names, not codes
	IncludeCountries []string
	ExcludeCountries []string

	MinRuntime *int
	MaxRuntime *int

	SortType   string
	SortOption string

	TitleTypes []string

	// ExcludeKeywords are not part of the parameter map, see Suffix
	ExcludeKeywords []string
}

const (
	MinRating = 1.0
	MaxRating = 10.0
)

var validGenres = newSet(
	"action", "adventure", "animation", "biography", "comedy", "crime",
	"documentary", "drama", "family", "fantasy", "film-noir", "game-show",
	"history", "horror", "music", "musical", "mystery", "news", "reality-tv",
	"romance", "sci-fi", "short", "sport", "talk-show", "thriller", "war",
	"western",
)

var validTitleTypes = newSet(
	"feature", "tv_series", "short", "tv_episode", "tv_miniseries", "tv_movie",
	"tv_special", "video_game", "video", "music_video", "podcast_series",
	"podcast_episode", "tv_short",
)

var validSortTypes = newSet("moviemeter", "user_rating", "num_votes")

var validSortOptions = newSet("asc", "desc")

// ValidGenres returns the accepted genre identifiers in sorted order
func ValidGenres() []string { return validGenres.sorted() }

// ValidTitleTypes returns the accepted title type identifiers in sorted order
func ValidTitleTypes() []string { return validTitleTypes.sorted() }

// ValidSortTypes returns the accepted sort keys in sorted order
func ValidSortTypes() []string { return validSortTypes.sorted() }

// ValidSortOptions returns the accepted sort directions in sorted order
func ValidSortOptions() []string { return validSortOptions.sorted() }

// IsValidGenre reports whether genre is a known genre identifier
func IsValidGenre(genre string) bool { return validGenres.has(genre) }

// IsValidTitleType reports whether titleType is a known title type identifier
func IsValidTitleType(titleType string) bool { return validTitleTypes.has(titleType) }

type set map[string]struct{}

func newSet(values ...string) set {
	s := make(set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

// sorted returns a fresh slice so callers cannot mutate the table
func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// invalid returns the values not in s, in input order
func (s set) invalid(values ...[]string) []string {
	var bad []string
	for _, list := range values {
		for _, v := range list {
			if !s.has(v) {
				bad = append(bad, v)
			}
		}
	}
	return bad
}
