package testutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/brendan.keane/imdburl/pkg/errors"
)

// AssertErrorType fails the test if err is nil or not of the expected type
func AssertErrorType(t *testing.T, err error, expected errors.ErrorType, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected %s error, got none", msg, expected)
	}
	if got := errors.GetType(err); got != expected {
		t.Fatalf("%s: got error type %s (%v), expected %s", msg, got, err, expected)
	}
}

// AssertRawQueryParam fails the test if the raw query of rawURL doesn't hold name=value.
// The raw form is compared so literal commas stay visible.
func AssertRawQueryParam(t *testing.T, rawURL, name, value string, msg string) {
	t.Helper()
	_, query, found := strings.Cut(rawURL, "?")
	if !found {
		t.Fatalf("%s: %q has no query string", msg, rawURL)
	}
	for _, pair := range strings.Split(query, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if k == name {
			if v != value {
				t.Fatalf("%s: query param %q: got %q, expected %q", msg, name, v, value)
			}
			return
		}
	}
	t.Fatalf("%s: query param %q not found in %q", msg, name, rawURL)
}

// AssertNoQueryParam fails the test if rawURL carries the named parameter
func AssertNoQueryParam(t *testing.T, rawURL, name string, msg string) {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("%s: parsing %q: %v", msg, rawURL, err)
	}
	if parsed.Query().Has(name) {
		t.Fatalf("%s: expected no %q parameter in %q", msg, name, rawURL)
	}
}

// AssertStringContains fails the test if str doesn't contain substring
func AssertStringContains(t *testing.T, str, substring string, msg string) {
	t.Helper()
	if !strings.Contains(str, substring) {
		t.Fatalf("%s: expected %q to contain %q", msg, str, substring)
	}
}
