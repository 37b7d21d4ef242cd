package geo

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// countryAliases maps common dataset variants to the standardized name
// used by the countries table.
var countryAliases = map[string]string{
	"usa":                      "united states",
	"u.s.a.":                   "united states",
	"united states of america": "united states",
	"uk":                       "united kingdom",
	"u.k.":                     "united kingdom",
	"great britain":            "united kingdom",
	"england":                  "united kingdom",
	"scotland":                 "united kingdom",
	"wales":                    "united kingdom",
	"northern ireland":         "united kingdom",
	"korea, south":             "south korea",
	"republic of korea":        "south korea",
	"korea, north":             "north korea",
	"russian federation":       "russia",
	"czechia":                  "czech republic",
	"holland":                  "netherlands",
	"the netherlands":          "netherlands",
	"republic of ireland":      "ireland",
	"bosnia":                   "bosnia and herzegovina",
	"macedonia":                "north macedonia",
	"burma":                    "myanmar",
	"viet nam":                 "vietnam",
	"international":            "",
	"unknown":                  "",
}

// StandardizeCountryName normalizes a raw country string for joining
// against the countries table. Returns "" when no country is usable.
func StandardizeCountryName(name string) string {
	name = norm.NFC.String(name)
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.Join(strings.Fields(name), " ")

	if alias, ok := countryAliases[name]; ok {
		return alias
	}
	return name
}
