// utils/countries.go
package utils

import "strings"

// ISO 3166-1 alpha-2 country code mapping for webhook payloads. Country
// names are whatever the operator typed into the customer address, so
// matching is case-insensitive with a French default (the shop's home
// market).
var countryToCode = map[string]string{
	"france":         "FR",
	"spain":          "ES",
	"portugal":       "PT",
	"germany":        "DE",
	"italy":          "IT",
	"united kingdom": "GB",
	"uk":             "GB",
	"ireland":        "IE",
	"netherlands":    "NL",
	"belgium":        "BE",
	"switzerland":    "CH",
	"austria":        "AT",
	"sweden":         "SE",
	"norway":         "NO",
	"denmark":        "DK",
	"finland":        "FI",
	"united states":  "US",
	"usa":            "US",
	"canada":         "CA",
	"australia":      "AU",
	"new zealand":    "NZ",
	"japan":          "JP",
	"china":          "CN",
	"brazil":         "BR",
	"morocco":        "MA",
}

// CountryCode maps a free-text country name to its ISO 3166-1 alpha-2
// code, falling back to FR.
func CountryCode(countryName string) string {
	if countryName == "" {
		return "FR"
	}
	if code, ok := countryToCode[strings.ToLower(strings.TrimSpace(countryName))]; ok {
		return code
	}
	return "FR"
}
