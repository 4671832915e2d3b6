package imdb

import (
	"sort"

	"github.com/brendan.keane/imdburl/pkg/errors"
)

// countryCodes maps the country names IMDb shows in its search form to the
// codes it expects in the countries parameter. Mostly ISO 3166-1 alpha-2,
// plus the site's own codes for countries that no longer exist.
var countryCodes = map[string]string{
	"Afghanistan":            "AF",
	"Albania":                "AL",
	"Algeria":                "DZ",
	"Andorra":                "AD",
	"Angola":                 "AO",
	"Argentina":              "AR",
	"Armenia":                "AM",
	"Australia":              "AU",
	"Austria":                "AT",
	"Azerbaijan":             "AZ",
	"Bahamas":                "BS",
	"Bangladesh":             "BD",
	"Belarus":                "BY",
	"Belgium":                "BE",
	"Bhutan":                 "BT",
	"Bolivia":                "BO",
	"Bosnia and Herzegovina": "BA",
	"Botswana":               "BW",
	"Brazil":                 "BR",
	"Bulgaria":               "BG",
	"Burkina Faso":           "BF",
	"Cambodia":               "KH",
	"Cameroon":               "CM",
	"Canada":                 "CA",
	"Chad":                   "TD",
	"Chile":                  "CL",
	"China":                  "CN",
	"Colombia":               "CO",
	"Costa Rica":             "CR",
	"Croatia":                "HR",
	"Cuba":                   "CU",
	"Cyprus":                 "CY",
	"Czech Republic":         "CZ",
	"Czechoslovakia":         "CSHH",
	"Denmark":                "DK",
	"Dominican Republic":     "DO",
	"East Germany":           "DDDE",
	"Ecuador":                "EC",
	"Egypt":                  "EG",
	"El Salvador":            "SV",
	"Estonia":                "EE",
	"Ethiopia":               "ET",
	"Finland":                "FI",
	"France":                 "FR",
	"Georgia":                "GE",
	"Germany":                "DE",
	"Ghana":                  "GH",
	"Greece":                 "GR",
	"Greenland":              "GL",
	"Guatemala":              "GT",
	"Haiti":                  "HT",
	"Honduras":               "HN",
	"Hong Kong":              "HK",
	"Hungary":                "HU",
	"Iceland":                "IS",
	"India":                  "IN",
	"Indonesia":              "ID",
	"Iran":                   "IR",
	"Iraq":                   "IQ",
	"Ireland":                "IE",
	"Israel":                 "IL",
	"Italy":                  "IT",
	"Jamaica":                "JM",
	"Japan":                  "JP",
	"Jordan":                 "JO",
	"Kazakhstan":             "KZ",
	"Kenya":                  "KE",
	"Kosovo":                 "XKV",
	"Kuwait":                 "KW",
	"Kyrgyzstan":             "KG",
	"Laos":                   "LA",
	"Latvia":                 "LV",
	"Lebanon":                "LB",
	"Libya":                  "LY",
	"Liechtenstein":          "LI",
	"Lithuania":              "LT",
	"Luxembourg":             "LU",
	"Madagascar":             "MG",
	"Malaysia":               "MY",
	"Mali":                   "ML",
	"Malta":                  "MT",
	"Mexico":                 "MX",
	"Moldova":                "MD",
	"Monaco":                 "MC",
	"Mongolia":               "MN",
	"Montenegro":             "ME",
	"Morocco":                "MA",
	"Mozambique":             "MZ",
	"Myanmar":                "MM",
	"Namibia":                "NA",
	"Nepal":                  "NP",
	"Netherlands":            "NL",
	"New Zealand":            "NZ",
	"Nicaragua":              "NI",
	"Nigeria":                "NG",
	"North Korea":            "KP",
	"North Macedonia":        "MK",
	"Norway":                 "NO",
	"Pakistan":               "PK",
	"Palestine":              "PS",
	"Panama":                 "PA",
	"Paraguay":               "PY",
	"Peru":                   "PE",
	"Philippines":            "PH",
	"Poland":                 "PL",
	"Portugal":               "PT",
	"Puerto Rico":            "PR",
	"Qatar":                  "QA",
	"Romania":                "RO",
	"Russia":                 "RU",
	"Rwanda":                 "RW",
	"Saudi Arabia":           "SA",
	"Senegal":                "SN",
	"Serbia":                 "RS",
	"Serbia and Montenegro":  "CSXX",
	"Singapore":              "SG",
	"Slovakia":               "SK",
	"Slovenia":               "SI",
	"South Africa":           "ZA",
	"South Korea":            "KR",
	"Soviet Union":           "SUHH",
	"Spain":                  "ES",
	"Sri Lanka":              "LK",
	"Sudan":                  "SD",
	"Sweden":                 "SE",
	"Switzerland":            "CH",
	"Syria":                  "SY",
	"Taiwan":                 "TW",
	"Tajikistan":             "TJ",
	"Tanzania":               "TZ",
	"Thailand":               "TH",
	"Tunisia":                "TN",
	"Turkey":                 "TR",
	"Uganda":                 "UG",
	"Ukraine":                "UA",
	"United Arab Emirates":   "AE",
	"United Kingdom":         "GB",
	"United States":          "US",
	"Uruguay":                "UY",
	"Uzbekistan":             "UZ",
	"Venezuela":              "VE",
	"Vietnam":                "VN",
	"West Germany":           "XWG",
	"Yemen":                  "YE",
	"Yugoslavia":             "YUCS",
	"Zambia":                 "ZM",
	"Zimbabwe":               "ZW",
}

// CountryCode returns the site code for a country name
func CountryCode(name string) (string, bool) {
	code, ok := countryCodes[name]
	return code, ok
}

// CountryNames returns every known country name in sorted order
func CountryNames() []string {
	names := make([]string, 0, len(countryCodes))
	for name := range countryCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveCountries converts country names to site codes, preserving order.
// It stops at the first unknown name and returns no partial result.
func ResolveCountries(names []string) ([]string, error) {
	codes := make([]string, 0, len(names))
	for _, name := range names {
		code, ok := countryCodes[name]
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeInvalidCountryName, "invalid country name: %s", name).
				WithContext("field", "country").
				WithContext("country", name)
		}
		codes = append(codes, code)
	}
	return codes, nil
}
