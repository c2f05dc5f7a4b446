package catalog

import (
	"sort"
	"strings"
)

// abbreviations is the curated expansion table for the shorthand that DRC
// cashiers key into receipt terminals. Keys and values are stored cleaned.
var abbreviations = map[string]string{
	// Whole-phrase shorthands
	"bnn pltn": "banane plantain",
	"hle vgt":  "huile vegetale",
	"pdt":      "pomme de terre",

	// Produce
	"bnn":  "banane",
	"pltn": "plantain",
	"tmt":  "tomate",
	"ogn":  "oignon",
	"crt":  "carotte",
	"mng":  "mangue",
	"anns": "ananas",
	"avct": "avocat",

	// Staples
	"rz":   "riz",
	"frn":  "farine",
	"pn":   "pain",
	"hrct": "haricot",
	"arch": "arachide",

	// Oils and condiments
	"hle": "huile",
	"vgt": "vegetale",
	"scr": "sucre",
	"sl":  "sel",

	// Proteins and dairy
	"plt": "poulet",
	"vnd": "viande",
	"pssn": "poisson",
	"lt":  "lait",
	"frmg": "fromage",

	// Beverages and household
	"bss": "boisson",
	"svn": "savon",
	"dtrg": "detergent",

	// Units
	"kg":  "kilo",
	"pqt": "paquet",
	"bte": "boite",
	"btl": "bouteille",
}

// sortedAbbrevKeys gives prefix matching a deterministic scan order.
var sortedAbbrevKeys = func() []string {
	keys := make([]string, 0, len(abbreviations))
	for k := range abbreviations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// ExpandAbbreviations rewrites known shorthand to full words. The whole
// cleaned string is tried first, then each token exactly, then each token by
// prefix against the table. Unknown tokens pass through unchanged.
func ExpandAbbreviations(cleaned string) string {
	if cleaned == "" {
		return ""
	}

	if full, ok := abbreviations[cleaned]; ok {
		return full
	}

	words := strings.Fields(cleaned)
	out := make([]string, 0, len(words))
	for _, word := range words {
		out = append(out, expandToken(word))
	}
	return strings.Join(out, " ")
}

func expandToken(token string) string {
	if full, ok := abbreviations[token]; ok {
		return full
	}

	// Looser pass: a token that extends a known shorthand (or is extended
	// by one) still expands, e.g. "bnns" -> "banane".
	if len(token) >= 2 {
		for _, key := range sortedAbbrevKeys {
			if strings.Contains(key, " ") {
				continue
			}
			if strings.HasPrefix(token, key) || strings.HasPrefix(key, token) {
				return abbreviations[key]
			}
		}
	}

	return token
}
