package filter

import "strings"

var cityAliases = map[string]string{
	"cdmx":             "Ciudad de México",
	"df":               "Ciudad de México",
	"d.f.":             "Ciudad de México",
	"mexico city":      "Ciudad de México",
	"ciudad de mexico": "Ciudad de México",
	"gdl":              "Guadalajara",
	"mty":              "Monterrey",
	"qro":              "Querétaro",
	"queretaro":        "Querétaro",
	"pue":              "Puebla",
	"cun":              "Cancún",
	"cancun":           "Cancún",
	"oax":              "Oaxaca",
	"mid":              "Mérida",
	"merida":           "Mérida",
}

// CanonicalCity maps common abbreviations to a canonical city name.
// Lookup is case-insensitive; unknown input is returned trimmed but unchanged.
func CanonicalCity(s string) string {
	s = strings.TrimSpace(s)
	if c, ok := cityAliases[strings.ToLower(s)]; ok {
		return c
	}
	return s
}
