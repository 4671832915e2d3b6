package imdb

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/brendan.keane/imdburl/pkg/errors"
)

// DefaultBaseURL is the IMDb advanced title search endpoint
const DefaultBaseURL = "https://www.imdb.com/search/title/"

// Query parameter names understood by the search endpoint
const (
	ParamGenres      = "genres"
	ParamNumVotes    = "num_votes"
	ParamUserRating  = "user_rating"
	ParamReleaseDate = "release_date"
	ParamCountries   = "countries"
	ParamRuntime     = "runtime"
	ParamSort        = "sort"
	ParamTitleType   = "title_type"
	ParamKeywords    = "keywords"
	ParamHas         = "has"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Builder turns FilterCriteria into search URLs. A Builder holds no mutable
// state and is safe for concurrent use.
type Builder struct {
	baseURL  string
	encoding Encoding
}

// Option configures a Builder
type Option func(*Builder)

// WithBaseURL overrides the search endpoint
func WithBaseURL(baseURL string) Option {
	return func(b *Builder) {
		if baseURL != "" {
			b.baseURL = baseURL
		}
	}
}

// WithEncoding selects how parameter values are escaped
func WithEncoding(e Encoding) Option {
	return func(b *Builder) {
		b.encoding = e
	}
}

// NewBuilder creates a Builder for DefaultBaseURL with comma preserving encoding
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		baseURL:  DefaultBaseURL,
		encoding: EncodingPreserve,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BaseURL returns the endpoint the builder targets
func (b *Builder) BaseURL() string {
	return b.baseURL
}

// Encoding returns the value escaping mode
func (b *Builder) Encoding() Encoding {
	return b.encoding
}

var defaultBuilder = NewBuilder()

// BuildSearchURL builds a search URL with the default builder
func BuildSearchURL(c FilterCriteria) (string, error) {
	return defaultBuilder.Build(c)
}

// Build validates the criteria and returns the search URL.
// The first violated rule aborts the call.
func (b *Builder) Build(c FilterCriteria) (string, error) {
	params, err := b.Params(c)
	if err != nil {
		return "", err
	}
	return b.baseURL + "?" + params.Encode(b.encoding), nil
}

// Params validates the criteria and returns the formatted parameters in
// query order without serializing them.
func (b *Builder) Params(c FilterCriteria) (QueryParams, error) {
	var params QueryParams

	steps := []func(FilterCriteria, *QueryParams) error{
		genresParam,
		votesParam,
		ratingParam,
		releaseDateParam,
		countriesParam,
		runtimeParam,
		sortParam,
		titleTypeParam,
	}
	for _, step := range steps {
		if err := step(c, &params); err != nil {
			return nil, err
		}
	}

	return params, nil
}

func genresParam(c FilterCriteria, params *QueryParams) error {
	if bad := validGenres.invalid(c.IncludeGenres, c.ExcludeGenres); len(bad) > 0 {
		return errors.Newf(errors.ErrorTypeInvalidGenre, "invalid genres specified: %s", strings.Join(bad, ", ")).
			WithContext("field", "genre").
			WithContext("genres", bad).
			WithContext("valid_values", ValidGenres())
	}
	if value := includeExclude(c.IncludeGenres, c.ExcludeGenres); value != "" {
		params.set(ParamGenres, value)
	}
	return nil
}

func votesParam(c FilterCriteria, params *QueryParams) error {
	if c.MinVotes != nil || c.MaxVotes != nil {
		params.set(ParamNumVotes, formatRange(formatInt(c.MinVotes), formatInt(c.MaxVotes)))
	}
	return nil
}

func ratingParam(c FilterCriteria, params *QueryParams) error {
	if c.MinRating == nil && c.MaxRating == nil {
		return nil
	}
	bounds := []struct {
		name  string
		value *float64
	}{
		{"min", c.MinRating},
		{"max", c.MaxRating},
	}
	for _, bound := range bounds {
		// negated so NaN is rejected too
		if bound.value != nil && !(*bound.value >= MinRating && *bound.value <= MaxRating) {
			return errors.Newf(errors.ErrorTypeInvalidRating, "rating must be between %.1f and %.1f", MinRating, MaxRating).
				WithContext("field", "rating").
				WithContext("bound", bound.name).
				WithContext("rating", *bound.value)
		}
	}
	params.set(ParamUserRating, formatRange(formatRating(c.MinRating), formatRating(c.MaxRating)))
	return nil
}

func releaseDateParam(c FilterCriteria, params *QueryParams) error {
	if c.StartDate != "" && !datePattern.MatchString(c.StartDate) {
		return invalidDate("start", c.StartDate)
	}
	if c.EndDate != "" && !datePattern.MatchString(c.EndDate) {
		return invalidDate("end", c.EndDate)
	}
	if c.StartDate != "" || c.EndDate != "" {
		params.set(ParamReleaseDate, formatRange(c.StartDate, c.EndDate))
	}
	return nil
}

func invalidDate(bound, value string) error {
	return errors.Newf(errors.ErrorTypeInvalidDateFormat, "%s date must be in YYYY-MM-DD format", bound).
		WithContext("field", "release date").
		WithContext("bound", bound).
		WithContext("date", value)
}

func countriesParam(c FilterCriteria, params *QueryParams) error {
	include, err := ResolveCountries(c.IncludeCountries)
	if err != nil {
		return err
	}
	exclude, err := ResolveCountries(c.ExcludeCountries)
	if err != nil {
		return err
	}
	if value := includeExclude(include, exclude); value != "" {
		params.set(ParamCountries, value)
	}
	return nil
}

func runtimeParam(c FilterCriteria, params *QueryParams) error {
	if c.MinRuntime != nil || c.MaxRuntime != nil {
		params.set(ParamRuntime, formatRange(formatInt(c.MinRuntime), formatInt(c.MaxRuntime)))
	}
	return nil
}

// sortParam only applies when both halves are given; one without the other is ignored
func sortParam(c FilterCriteria, params *QueryParams) error {
	if c.SortType == "" || c.SortOption == "" {
		return nil
	}
	if !validSortTypes.has(c.SortType) {
		return errors.Newf(errors.ErrorTypeInvalidSortType, "invalid sort type %q", c.SortType).
			WithContext("field", "sort type").
			WithContext("valid_values", ValidSortTypes())
	}
	if !validSortOptions.has(c.SortOption) {
		return errors.Newf(errors.ErrorTypeInvalidSortOption, "invalid sort option %q", c.SortOption).
			WithContext("field", "sort option").
			WithContext("valid_values", ValidSortOptions())
	}
	params.set(ParamSort, c.SortType+","+c.SortOption)
	return nil
}

func titleTypeParam(c FilterCriteria, params *QueryParams) error {
	if len(c.TitleTypes) == 0 {
		return nil
	}
	if bad := validTitleTypes.invalid(c.TitleTypes); len(bad) > 0 {
		return errors.Newf(errors.ErrorTypeInvalidTitleType, "invalid title types specified: %s", strings.Join(bad, ", ")).
			WithContext("field", "title type").
			WithContext("title_types", bad).
			WithContext("valid_values", ValidTitleTypes())
	}
	params.set(ParamTitleType, strings.Join(c.TitleTypes, ","))
	return nil
}

// Suffix returns the out-of-band tail appended after the encoded query:
// the excluded keywords and the awards flag.
func (b *Builder) Suffix(excludeKeywords []string, hasAwards bool) string {
	var buf strings.Builder
	if kw := b.EncodeKeywords(excludeKeywords); kw != "" {
		buf.WriteString("&" + ParamKeywords + "=" + kw)
	}
	if hasAwards {
		buf.WriteString("&" + ParamHas + "=awards")
	}
	return buf.String()
}

// EncodeKeywords prefixes every keyword with '!' and joins them with ','.
// Blank keywords are skipped. A comma inside a keyword is always escaped so
// it cannot split the keyword in two.
func (b *Builder) EncodeKeywords(keywords []string) string {
	parts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		parts = append(parts, strings.ReplaceAll(b.encoding.Escape("!"+kw), ",", "%2C"))
	}
	return strings.Join(parts, ",")
}

// Suffix is Builder.Suffix on the default builder
func Suffix(excludeKeywords []string, hasAwards bool) string {
	return defaultBuilder.Suffix(excludeKeywords, hasAwards)
}

func includeExclude(include, exclude []string) string {
	parts := make([]string, 0, len(include)+len(exclude))
	parts = append(parts, include...)
	for _, v := range exclude {
		parts = append(parts, "!"+v)
	}
	return strings.Join(parts, ",")
}

func formatRange(lower, upper string) string {
	return lower + "," + upper
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// formatRating renders whole numbers with one decimal place (7 -> "7.0")
func formatRating(v *float64) string {
	if v == nil {
		return ""
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
