package imdb

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brendan.keane/imdburl/pkg/errors"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestBuild_EmptyCriteria(t *testing.T) {
	url, err := BuildSearchURL(FilterCriteria{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"?", url)
}

func TestBuild_EndToEnd(t *testing.T) {
	url, err := BuildSearchURL(FilterCriteria{
		IncludeGenres:    []string{"comedy"},
		MinRating:        floatPtr(7.0),
		MaxRating:        floatPtr(10.0),
		IncludeCountries: []string{"United States"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://www.imdb.com/search/title/?genres=comedy&user_rating=7.0,10.0&countries=US", url)
}

func TestBuild_AllGroupsInOrder(t *testing.T) {
	c := FilterCriteria{
		IncludeGenres:    []string{"drama", "crime"},
		ExcludeGenres:    []string{"horror"},
		MinVotes:         intPtr(1000),
		MaxVotes:         intPtr(500000),
		MinRating:        floatPtr(6.5),
		StartDate:        "1990-01-01",
		EndDate:          "2020-12-31",
		IncludeCountries: []string{"France", "Italy"},
		ExcludeCountries: []string{"United States"},
		MinRuntime:       intPtr(80),
		SortType:         "num_votes",
		SortOption:       "desc",
		TitleTypes:       []string{"feature", "tv_movie"},
	}

	url, err := BuildSearchURL(c)
	require.NoError(t, err)

	expected := DefaultBaseURL + "?" + strings.Join([]string{
		"genres=drama,crime,!horror",
		"num_votes=1000,500000",
		"user_rating=6.5,",
		"release_date=1990-01-01,2020-12-31",
		"countries=FR,IT,!US",
		"runtime=80,",
		"sort=num_votes,desc",
		"title_type=feature,tv_movie",
	}, "&")
	assert.Equal(t, expected, url)
}

func TestBuild_Idempotent(t *testing.T) {
	c := FilterCriteria{
		IncludeGenres: []string{"comedy", "romance"},
		MinVotes:      intPtr(10),
		SortType:      "moviemeter",
		SortOption:    "asc",
	}
	first, err := BuildSearchURL(c)
	require.NoError(t, err)
	second, err := BuildSearchURL(c)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParams_Genres(t *testing.T) {
	params, err := NewBuilder().Params(FilterCriteria{
		IncludeGenres: []string{"comedy"},
		ExcludeGenres: []string{"horror"},
	})
	require.NoError(t, err)

	value, ok := params.Get(ParamGenres)
	require.True(t, ok)
	assert.Equal(t, "comedy,!horror", value)
}

func TestParams_ExcludeOnlyGenres(t *testing.T) {
	params, err := NewBuilder().Params(FilterCriteria{ExcludeGenres: []string{"horror", "war"}})
	require.NoError(t, err)

	value, _ := params.Get(ParamGenres)
	assert.Equal(t, "!horror,!war", value)
}

func TestBuild_InvalidGenresReportedTogether(t *testing.T) {
	_, err := BuildSearchURL(FilterCriteria{
		IncludeGenres: []string{"comedy", "slapstick"},
		ExcludeGenres: []string{"gore"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidGenre))
	assert.Contains(t, err.Error(), "slapstick, gore")
	assert.Equal(t, []string{"slapstick", "gore"}, errors.GetContext(err)["genres"])
}

func TestBuild_RangeEncoding(t *testing.T) {
	tests := []struct {
		name     string
		criteria FilterCriteria
		param    string
		expected string
	}{
		{"min votes only", FilterCriteria{MinVotes: intPtr(1000)}, ParamNumVotes, "1000,"},
		{"max votes only", FilterCriteria{MaxVotes: intPtr(5000)}, ParamNumVotes, ",5000"},
		{"zero votes kept", FilterCriteria{MinVotes: intPtr(0)}, ParamNumVotes, "0,"},
		{"inverted votes accepted", FilterCriteria{MinVotes: intPtr(10), MaxVotes: intPtr(1)}, ParamNumVotes, "10,1"},
		{"negative runtime accepted", FilterCriteria{MinRuntime: intPtr(-5)}, ParamRuntime, "-5,"},
		{"max runtime only", FilterCriteria{MaxRuntime: intPtr(120)}, ParamRuntime, ",120"},
		{"whole rating", FilterCriteria{MaxRating: floatPtr(9)}, ParamUserRating, ",9.0"},
		{"fractional rating", FilterCriteria{MinRating: floatPtr(7.25)}, ParamUserRating, "7.25,"},
		{"start date only", FilterCriteria{StartDate: "2000-01-01"}, ParamReleaseDate, "2000-01-01,"},
		{"end date only", FilterCriteria{EndDate: "2010-06-30"}, ParamReleaseDate, ",2010-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := NewBuilder().Params(tt.criteria)
			require.NoError(t, err)

			value, ok := params.Get(tt.param)
			require.True(t, ok, "parameter %s should be present", tt.param)
			assert.Equal(t, tt.expected, value)
			assert.Len(t, params, 1)
		})
	}
}

func TestBuild_InvalidRating(t *testing.T) {
	tests := []struct {
		name string
		min  *float64
		max  *float64
	}{
		{"min below range", floatPtr(0.9), nil},
		{"max above range", nil, floatPtr(10.1)},
		{"zero", floatPtr(0), floatPtr(5)},
		{"negative", floatPtr(-1), nil},
		{"valid min invalid max", floatPtr(5), floatPtr(11)},
		{"NaN", floatPtr(math.NaN()), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSearchURL(FilterCriteria{MinRating: tt.min, MaxRating: tt.max})
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidRating), "got %v", err)
		})
	}
}

func TestBuild_RatingBoundsInclusive(t *testing.T) {
	url, err := BuildSearchURL(FilterCriteria{MinRating: floatPtr(1.0), MaxRating: floatPtr(10.0)})
	require.NoError(t, err)
	assert.Contains(t, url, "user_rating=1.0,10.0")
}

func TestBuild_InvalidDateFormat(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		bound string
	}{
		{"slashes", "2020/01/01", "", "start"},
		{"short year", "20-01-01", "", "start"},
		{"single digit month", "2020-1-01", "", "start"},
		{"trailing garbage", "2020-01-015", "", "start"},
		{"words", "", "yesterday", "end"},
		{"valid start invalid end", "2020-01-01", "2020-13", "end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSearchURL(FilterCriteria{StartDate: tt.start, EndDate: tt.end})
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidDateFormat))
			assert.Equal(t, tt.bound, errors.GetContext(err)["bound"])
			assert.Contains(t, err.Error(), tt.bound+" date")
		})
	}
}

func TestBuild_InvalidCountry(t *testing.T) {
	_, err := BuildSearchURL(FilterCriteria{
		IncludeCountries: []string{"France"},
		ExcludeCountries: []string{"Atlantis"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidCountryName))
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestBuild_Sorting(t *testing.T) {
	tests := []struct {
		name      string
		sortType  string
		option    string
		expected  string
		errorType errors.ErrorType
	}{
		{name: "both set", sortType: "user_rating", option: "desc", expected: "user_rating,desc"},
		{name: "type only is skipped", sortType: "user_rating"},
		{name: "option only is skipped", option: "asc"},
		{name: "invalid type alone is skipped", sortType: "popularity"},
		{name: "invalid type", sortType: "popularity", option: "asc", errorType: errors.ErrorTypeInvalidSortType},
		{name: "invalid option", sortType: "moviemeter", option: "up", errorType: errors.ErrorTypeInvalidSortOption},
		{name: "type checked before option", sortType: "bogus", option: "bogus", errorType: errors.ErrorTypeInvalidSortType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := NewBuilder().Params(FilterCriteria{SortType: tt.sortType, SortOption: tt.option})
			if tt.errorType != "" {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, tt.errorType), "got %v", err)
				return
			}
			require.NoError(t, err)

			value, ok := params.Get(ParamSort)
			if tt.expected == "" {
				assert.False(t, ok, "sort should be omitted")
				return
			}
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestBuild_TitleTypes(t *testing.T) {
	params, err := NewBuilder().Params(FilterCriteria{TitleTypes: []string{"tv_series", "podcast_episode"}})
	require.NoError(t, err)
	value, _ := params.Get(ParamTitleType)
	assert.Equal(t, "tv_series,podcast_episode", value)

	_, err = BuildSearchURL(FilterCriteria{TitleTypes: []string{"feature", "movie", "cartoon"}})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidTitleType))
	assert.Equal(t, []string{"movie", "cartoon"}, errors.GetContext(err)["title_types"])
}

func TestBuild_FailFastOrder(t *testing.T) {
	// genres are validated before ratings, ratings before title types
	_, err := BuildSearchURL(FilterCriteria{
		IncludeGenres: []string{"nope"},
		MinRating:     floatPtr(42),
		TitleTypes:    []string{"nope"},
	})
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidGenre))

	_, err = BuildSearchURL(FilterCriteria{
		MinRating:  floatPtr(42),
		TitleTypes: []string{"nope"},
	})
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidRating))
}

func TestBuild_StrictEncoding(t *testing.T) {
	b := NewBuilder(WithEncoding(EncodingStrict))

	url, err := b.Build(FilterCriteria{MinVotes: intPtr(1000)})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"?num_votes=1000%2C", url)

	url, err = b.Build(FilterCriteria{IncludeGenres: []string{"comedy"}, ExcludeGenres: []string{"horror"}})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"?genres=comedy%2C%21horror", url)
}

func TestBuild_CustomBaseURL(t *testing.T) {
	b := NewBuilder(WithBaseURL("https://m.imdb.com/search/title/"))
	url, err := b.Build(FilterCriteria{TitleTypes: []string{"feature"}})
	require.NoError(t, err)
	assert.Equal(t, "https://m.imdb.com/search/title/?title_type=feature", url)

	assert.Equal(t, DefaultBaseURL, NewBuilder(WithBaseURL("")).BaseURL())
}

func TestSuffix(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		awards   bool
		expected string
	}{
		{"keywords and awards", []string{"zombie", "sequel"}, true, "&keywords=!zombie,!sequel&has=awards"},
		{"awards only", nil, true, "&has=awards"},
		{"keywords only", []string{"remake"}, false, "&keywords=!remake"},
		{"blank keywords skipped", []string{" ", "remake", ""}, true, "&keywords=!remake&has=awards"},
		{"spaces escaped", []string{"based on novel"}, false, "&keywords=!based+on+novel"},
		{"comma inside a keyword", []string{"cat, dog", "remake"}, false, "&keywords=!cat%2C+dog,!remake"},
		{"nothing", nil, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Suffix(tt.keywords, tt.awards))
		})
	}
}

func TestEncodeKeywords_Strict(t *testing.T) {
	b := NewBuilder(WithEncoding(EncodingStrict))
	assert.Equal(t, "%21zombie,%21cat%2C+dog", b.EncodeKeywords([]string{"zombie", "cat, dog"}))
}

func TestCatalogReturnsCopies(t *testing.T) {
	genres := ValidGenres()
	require.NotEmpty(t, genres)
	genres[0] = "mutated"
	assert.NotEqual(t, "mutated", ValidGenres()[0])

	assert.Len(t, ValidTitleTypes(), 13)
	assert.Equal(t, []string{"moviemeter", "num_votes", "user_rating"}, ValidSortTypes())
	assert.Equal(t, []string{"asc", "desc"}, ValidSortOptions())
	assert.True(t, IsValidGenre("sci-fi"))
	assert.False(t, IsValidTitleType("movie"))
}

func BenchmarkBuildSearchURL(b *testing.B) {
	c := FilterCriteria{
		IncludeGenres:    []string{"comedy", "drama"},
		ExcludeGenres:    []string{"horror"},
		MinVotes:         intPtr(1000),
		MinRating:        floatPtr(7),
		StartDate:        "2000-01-01",
		IncludeCountries: []string{"United States", "United Kingdom"},
		SortType:         "user_rating",
		SortOption:       "desc",
		TitleTypes:       []string{"feature"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = BuildSearchURL(c)
	}
}
