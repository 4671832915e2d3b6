package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brendan.keane/imdburl/internal/testutil"
	"github.com/brendan.keane/imdburl/pkg/imdb"
)

func TestRenderExplain(t *testing.T) {
	c := testutil.NewCriteriaBuilder().
		WithGenres([]string{"comedy"}, []string{"horror"}).
		WithVotes(testutil.Int(1000), nil).
		WithExcludeKeywords("zombie").
		Build()

	b := imdb.NewBuilder()
	params, err := b.Params(c)
	require.NoError(t, err)
	url, err := b.Build(c)
	require.NoError(t, err)

	out := NewDisplayer().RenderExplain(Explanation{
		Source:   "config/search_query.yml",
		Params:   params,
		Keywords: b.EncodeKeywords(c.ExcludeKeywords),
		Awards:   true,
		URL:      url,
		Encoding: b.Encoding(),
	})

	for _, want := range []string{
		"config/search_query.yml",
		"encoding: preserve",
		"genres",
		"comedy,!horror",
		"excludes",
		"num_votes",
		"1000,",
		"vote count range",
		"!zombie",
		"awards",
		url,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "no filters set")
}

func TestRenderExplain_KeywordsMatchURL(t *testing.T) {
	b := imdb.NewBuilder()
	keywords := []string{"", "based on novel", "  "}

	out := NewDisplayer().RenderExplain(Explanation{
		Keywords: b.EncodeKeywords(keywords),
		URL:      imdb.DefaultBaseURL + "?" + b.Suffix(keywords, false),
		Encoding: b.Encoding(),
	})

	testutil.AssertStringContains(t, out, "!based+on+novel", "escaped keyword")
	assert.NotContains(t, out, "!,")
	assert.NotContains(t, out, "!based on novel")
}

func TestRenderExplain_Empty(t *testing.T) {
	out := NewDisplayer().RenderExplain(Explanation{
		URL:      imdb.DefaultBaseURL + "?",
		Encoding: imdb.EncodingStrict,
	})

	assert.Contains(t, out, "no filters set")
	assert.Contains(t, out, "encoding: strict")
	assert.NotContains(t, out, "Suffix")
	assert.Contains(t, out, imdb.DefaultBaseURL+"?")
}

func TestRenderCatalog(t *testing.T) {
	out := NewDisplayer().RenderCatalog("genres", imdb.ValidGenres())

	assert.Contains(t, out, "genres (27)")
	for _, g := range imdb.ValidGenres() {
		assert.Contains(t, out, g)
	}
}

func TestRenderCountries(t *testing.T) {
	out := NewDisplayer().RenderCountries([]string{"Germany", "Japan"})

	assert.Contains(t, out, "countries (2)")
	lines := strings.Split(out, "\n")
	var found int
	for _, line := range lines {
		if strings.Contains(line, "DE") && strings.Contains(line, "Germany") {
			found++
		}
		if strings.Contains(line, "JP") && strings.Contains(line, "Japan") {
			found++
		}
	}
	assert.Equal(t, 2, found)
}
