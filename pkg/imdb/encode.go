package imdb

import (
	"net/url"
	"strings"
)

// Param is one name=value pair of the search query
type Param struct {
	Name  string
	Value string
}

// QueryParams keeps query parameters in insertion order
type QueryParams []Param

// Get returns the value stored under name
func (q QueryParams) Get(name string) (string, bool) {
	for _, p := range q {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Names returns the parameter names in order
func (q QueryParams) Names() []string {
	names := make([]string, len(q))
	for i, p := range q {
		names[i] = p.Name
	}
	return names
}

func (q *QueryParams) set(name, value string) {
	*q = append(*q, Param{Name: name, Value: value})
}

// Encoding selects how parameter values are escaped
type Encoding int

const (
	// EncodingPreserve escapes values like url.QueryEscape but leaves ',' and '!' literal
	EncodingPreserve Encoding = iota
	// EncodingStrict escapes every reserved character, commas included
	EncodingStrict
)

func (e Encoding) String() string {
	switch e {
	case EncodingStrict:
		return "strict"
	default:
		return "preserve"
	}
}

var preserveReplacer = strings.NewReplacer("%2C", ",", "%21", "!")

// Escape escapes a single query component
func (e Encoding) Escape(s string) string {
	escaped := url.QueryEscape(s)
	if e == EncodingStrict {
		return escaped
	}
	return preserveReplacer.Replace(escaped)
}

// Encode serializes the parameters as name=value pairs joined by '&'
func (q QueryParams) Encode(e Encoding) string {
	if len(q) == 0 {
		return ""
	}
	var buf strings.Builder
	for i, p := range q {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(url.QueryEscape(p.Name))
		buf.WriteByte('=')
		buf.WriteString(e.Escape(p.Value))
	}
	return buf.String()
}
