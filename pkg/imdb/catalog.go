package imdb

import "strings"

// Catalog kinds accepted by Catalog
const (
	CatalogGenres      = "genres"
	CatalogTitleTypes  = "title-types"
	CatalogCountries   = "countries"
	CatalogSortTypes   = "sort-types"
	CatalogSortOptions = "sort-options"
)

var catalogs = map[string]func() []string{
	CatalogGenres:      ValidGenres,
	CatalogTitleTypes:  ValidTitleTypes,
	CatalogCountries:   CountryNames,
	CatalogSortTypes:   ValidSortTypes,
	CatalogSortOptions: ValidSortOptions,
}

// CatalogKinds returns the names accepted by Catalog
func CatalogKinds() []string {
	return []string{CatalogGenres, CatalogTitleTypes, CatalogCountries, CatalogSortTypes, CatalogSortOptions}
}

// Catalog returns the sorted accepted values of one kind. Underscores are
// accepted in place of hyphens.
func Catalog(kind string) ([]string, bool) {
	values, ok := catalogs[strings.ReplaceAll(strings.ToLower(kind), "_", "-")]
	if !ok {
		return nil, false
	}
	return values(), true
}
