package testutil

import (
	"github.com/brendan.keane/imdburl/pkg/imdb"
)

// CriteriaBuilder provides a fluent interface for building test criteria
type CriteriaBuilder struct {
	criteria imdb.FilterCriteria
}

// NewCriteriaBuilder creates a builder with no filters set
func NewCriteriaBuilder() *CriteriaBuilder {
	return &CriteriaBuilder{}
}

// WithGenres sets included and excluded genres
func (b *CriteriaBuilder) WithGenres(include []string, exclude []string) *CriteriaBuilder {
	b.criteria.IncludeGenres = include
	b.criteria.ExcludeGenres = exclude
	return b
}

// WithVotes sets the vote bounds; nil leaves a bound open
func (b *CriteriaBuilder) WithVotes(min, max *int) *CriteriaBuilder {
	b.criteria.MinVotes = min
	b.criteria.MaxVotes = max
	return b
}

// WithRating sets the rating bounds; nil leaves a bound open
func (b *CriteriaBuilder) WithRating(min, max *float64) *CriteriaBuilder {
	b.criteria.MinRating = min
	b.criteria.MaxRating = max
	return b
}

// WithDates sets the release date bounds
func (b *CriteriaBuilder) WithDates(start, end string) *CriteriaBuilder {
	b.criteria.StartDate = start
	b.criteria.EndDate = end
	return b
}

// WithCountries sets included and excluded country names
func (b *CriteriaBuilder) WithCountries(include []string, exclude []string) *CriteriaBuilder {
	b.criteria.IncludeCountries = include
	b.criteria.ExcludeCountries = exclude
	return b
}

// WithRuntime sets the runtime bounds in minutes
func (b *CriteriaBuilder) WithRuntime(min, max *int) *CriteriaBuilder {
	b.criteria.MinRuntime = min
	b.criteria.MaxRuntime = max
	return b
}

// WithSort sets the sort key and direction
func (b *CriteriaBuilder) WithSort(sortType, option string) *CriteriaBuilder {
	b.criteria.SortType = sortType
	b.criteria.SortOption = option
	return b
}

// WithTitleTypes sets the title types
func (b *CriteriaBuilder) WithTitleTypes(types ...string) *CriteriaBuilder {
	b.criteria.TitleTypes = types
	return b
}

// WithExcludeKeywords sets the excluded keywords
func (b *CriteriaBuilder) WithExcludeKeywords(keywords ...string) *CriteriaBuilder {
	b.criteria.ExcludeKeywords = keywords
	return b
}

// Build returns the constructed criteria
func (b *CriteriaBuilder) Build() imdb.FilterCriteria {
	return b.criteria
}

// Int returns a pointer to v
func Int(v int) *int {
	return &v
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}
