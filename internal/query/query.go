// Package query loads search criteria from a YAML query file.
package query

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brendan.keane/imdburl/pkg/errors"
	"github.com/brendan.keane/imdburl/pkg/imdb"
)

// DefaultPath is where the query file is looked up when no path is given
const DefaultPath = "config/search_query.yml"

// File mirrors the query file. Every key is optional and null means unset.
type File struct {
	IncludeGenres    []string `yaml:"include_genres" json:"include_genres,omitempty"`
	ExcludeGenres    []string `yaml:"exclude_genres" json:"exclude_genres,omitempty"`
	MinVotes         *int     `yaml:"min_votes" json:"min_votes,omitempty"`
	MaxVotes         *int     `yaml:"max_votes" json:"max_votes,omitempty"`
	MinRating        *float64 `yaml:"min_rating" json:"min_rating,omitempty"`
	MaxRating        *float64 `yaml:"max_rating" json:"max_rating,omitempty"`
	StartDate        Date     `yaml:"start_date" json:"start_date,omitempty"`
	EndDate          Date     `yaml:"end_date" json:"end_date,omitempty"`
	IncludeCountries []string `yaml:"include_countries" json:"include_countries,omitempty"`
	ExcludeCountries []string `yaml:"exclude_countries" json:"exclude_countries,omitempty"`
	MinRuntime       *int     `yaml:"min_runtime" json:"min_runtime,omitempty"`
	MaxRuntime       *int     `yaml:"max_runtime" json:"max_runtime,omitempty"`
	SortType         string   `yaml:"sort_type" json:"sort_type,omitempty"`
	SortOption       string   `yaml:"sort_option" json:"sort_option,omitempty"`
	TitleType        []string `yaml:"title_type" json:"title_type,omitempty"`
	ExcludeKeywords  []string `yaml:"exclude_keywords" json:"exclude_keywords,omitempty"`
}

// Load reads and parses the query file at path
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read query file").
			WithContext("path", path)
	}

	f, err := Parse(data)
	if err != nil {
		if sErr, ok := errors.As(err); ok {
			sErr.WithContext("path", path)
		}
		return nil, err
	}
	return f, nil
}

// Parse decodes a query file document. An empty document yields an empty File.
func Parse(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse query file")
	}
	return f, nil
}

// Criteria converts the file into builder input
func (f *File) Criteria() imdb.FilterCriteria {
	return imdb.FilterCriteria{
		IncludeGenres:    f.IncludeGenres,
		ExcludeGenres:    f.ExcludeGenres,
		MinVotes:         f.MinVotes,
		MaxVotes:         f.MaxVotes,
		MinRating:        f.MinRating,
		MaxRating:        f.MaxRating,
		StartDate:        string(f.StartDate),
		EndDate:          string(f.EndDate),
		IncludeCountries: f.IncludeCountries,
		ExcludeCountries: f.ExcludeCountries,
		MinRuntime:       f.MinRuntime,
		MaxRuntime:       f.MaxRuntime,
		SortType:         f.SortType,
		SortOption:       f.SortOption,
		TitleTypes:       f.TitleType,
		ExcludeKeywords:  f.ExcludeKeywords,
	}
}

// URL builds the search URL for the file and appends the keyword and awards suffix
func (f *File) URL(b *imdb.Builder, hasAwards bool) (string, error) {
	url, err := b.Build(f.Criteria())
	if err != nil {
		return "", err
	}
	return url + b.Suffix(f.ExcludeKeywords, hasAwards), nil
}

// Request is a query sent as JSON by the MCP tool and the Lambda handler
type Request struct {
	File
	HasAwards      *bool `json:"has_awards,omitempty"`
	StrictEncoding bool  `json:"strict_encoding,omitempty"`
}

// DecodeRequest parses a JSON request. Unknown keys are rejected so that a
// misspelled filter is not silently dropped.
func DecodeRequest(data []byte) (*Request, error) {
	r := &Request{}
	if len(bytes.TrimSpace(data)) == 0 {
		return r, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(r); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse request")
	}
	return r, nil
}

// Awards reports whether the awards suffix is wanted; it defaults to true
func (r *Request) Awards() bool {
	return r.HasAwards == nil || *r.HasAwards
}

// Builder returns a builder honoring the request's encoding choice
func (r *Request) Builder(opts ...imdb.Option) *imdb.Builder {
	if r.StrictEncoding {
		opts = append(opts, imdb.WithEncoding(imdb.EncodingStrict))
	}
	return imdb.NewBuilder(opts...)
}

// Date is a release date bound. Unquoted YAML timestamps are normalized to
// YYYY-MM-DD; any other input is kept verbatim so the builder can check it.
type Date string

// timestampLayouts are the YAML timestamp forms, single digit fields included
var timestampLayouts = []string{
	"2006-1-2",
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.New(errors.ErrorTypeConfig, "date must be a scalar").
			WithContext("line", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		*d = ""
	case "!!timestamp":
		*d = normalizeTimestamp(node.Value)
	default:
		*d = Date(node.Value)
	}
	return nil
}

func normalizeTimestamp(value string) Date {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Date(t.Format("2006-01-02"))
		}
	}
	return Date(value)
}
