package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/brendan.keane/imdburl/internal/display"
	"github.com/brendan.keane/imdburl/pkg/errors"
	"github.com/brendan.keane/imdburl/pkg/imdb"
)

// ListHandler prints the accepted values of a filter
type ListHandler struct {
	logger zerolog.Logger
}

// NewListHandler creates a new list command handler
func NewListHandler(logger zerolog.Logger) *ListHandler {
	return &ListHandler{
		logger: logger.With().Str("handler", "list").Logger(),
	}
}

// Execute handles the list command. Without an argument it prints the
// catalog kinds. Plain output is one value per line; countries are printed
// as name and code separated by a tab.
func (h *ListHandler) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, kind := range imdb.CatalogKinds() {
			fmt.Fprintln(out, kind)
		}
		return nil
	}

	kind := args[0]
	values, ok := imdb.Catalog(kind)
	if !ok {
		h.logger.Debug().Str("kind", kind).Msg("unknown catalog")
		return errors.Newf(errors.ErrorTypeConfig, "unknown list %q", kind).
			WithContext("valid_values", imdb.CatalogKinds()).
			WithContext("suggestion", "one of "+strings.Join(imdb.CatalogKinds(), ", "))
	}

	styled, _ := cmd.Flags().GetBool("styled")
	countries := strings.EqualFold(strings.ReplaceAll(kind, "_", "-"), imdb.CatalogCountries)

	if styled {
		d := display.NewDisplayer()
		if countries {
			fmt.Fprint(out, d.RenderCountries(values))
		} else {
			fmt.Fprint(out, d.RenderCatalog(kind, values))
		}
		return nil
	}

	for _, v := range values {
		if countries {
			code, _ := imdb.CountryCode(v)
			fmt.Fprintf(out, "%s\t%s\n", v, code)
			continue
		}
		fmt.Fprintln(out, v)
	}
	return nil
}
