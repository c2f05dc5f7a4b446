// Package shops identifies which store a receipt came from by matching raw
// OCR text against an ordered keyword rule table.
package shops

import (
	"regexp"
	"strings"
)

// Sentinel shop identities for receipts that match no keyword rule.
const (
	// ShopLocal marks a receipt that carries DRC phone or city markers but
	// no recognized chain identity.
	ShopLocal = "LocalShop"
	// ShopUnknown marks a receipt with no identifying markers at all.
	ShopUnknown = "Unknown"
)

// Rule maps one shop identity to the literal keywords that betray it on a
// receipt. Keywords are matched case-insensitively on word boundaries.
type Rule struct {
	ShopID   string
	Keywords []string
}

// DefaultRules returns the curated chain table. Order matters: the first
// rule with any matching keyword wins, so more specific chains go first.
func DefaultRules() []Rule {
	return []Rule{
		{ShopID: "ShopA", Keywords: []string{"SHOP A INC", "AVENUE 123", "SHOP A SUPERMARKET"}},
		{ShopID: "ShopB", Keywords: []string{"GRAND MARCHÉ", "TEL: 243", "GRAND MARCHE", "GRAND MARKET"}},
		{ShopID: "ShopC", Keywords: []string{"CARREFOUR", "CARREFOUR MARKET", "CARREFOUR EXPRESS"}},
		{ShopID: "ShopD", Keywords: []string{"SHOPRITE", "SHOPRITE SUPERMARKET", "SHOPRITE STORES"}},
		{ShopID: "KinMart", Keywords: []string{"KINMART", "KIN MART", "KINMART SUPERMARKET", "KINMART EXPRESS"}},
		{ShopID: "CongoMarket", Keywords: []string{"CONGO MARKET", "CONGO MARCHÉ", "CONGO SUPERMARKET"}},
		{ShopID: "TotalEnergies", Keywords: []string{"TOTAL ENERGIES", "TOTAL", "STATION TOTAL", "TOTAL STATION"}},
		{ShopID: "Engen", Keywords: []string{"ENGEN", "ENGEN STATION", "ENGEN SERVICE STATION"}},
	}
}

// DRC phone numbers on a receipt mean a local business even when the name
// is unreadable.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`TEL[:\s]*\+?243[\s\-.]*\d{3}[\s\-.]*\d{3}[\s\-.]*\d{3}`),
	regexp.MustCompile(`PHONE[:\s]*\+?243[\s\-.]*\d{3}[\s\-.]*\d{3}[\s\-.]*\d{3}`),
	regexp.MustCompile(`TÉL[:\s]*\+?243[\s\-.]*\d{3}[\s\-.]*\d{3}[\s\-.]*\d{3}`),
}

var congoleseCities = []string{
	"KINSHASA", "LUBUMBASHI", "KANANGA", "KISANGANI",
	"GOMA", "BUKAVU", "MBUJI-MAYI", "TSHIKAPA", "KOLWEZI",
}

// Identifier resolves raw receipt text to a shop identity. It is immutable
// after construction and safe for concurrent use.
type Identifier struct {
	rules    []Rule
	compiled [][]*regexp.Regexp
}

// NewIdentifier builds an identifier over the given rule table, preserving
// table order. Pass DefaultRules() for the curated set.
func NewIdentifier(rules []Rule) *Identifier {
	id := &Identifier{
		rules:    rules,
		compiled: make([][]*regexp.Regexp, len(rules)),
	}
	for i, rule := range rules {
		res := make([]*regexp.Regexp, 0, len(rule.Keywords))
		for _, keyword := range rule.Keywords {
			res = append(res, regexp.MustCompile(keywordPattern(strings.ToUpper(keyword))))
		}
		id.compiled[i] = res
	}
	return id
}

// keywordPattern quotes keyword and anchors it on word boundaries. The \b
// assertion is ASCII-only in Go regexps, so it is applied only where the
// keyword actually starts or ends with an ASCII word character, otherwise
// accented keywords like MARCHÉ could never match.
func keywordPattern(keyword string) string {
	pattern := regexp.QuoteMeta(keyword)
	runes := []rune(keyword)
	if len(runes) > 0 {
		if isASCIIWord(runes[0]) {
			pattern = `\b` + pattern
		}
		if isASCIIWord(runes[len(runes)-1]) {
			pattern += `\b`
		}
	}
	return pattern
}

func isASCIIWord(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// Identify returns the shop ID for rawText. It never fails: text matching
// no rule but carrying DRC phone or city markers classifies as ShopLocal,
// anything else as ShopUnknown.
func (id *Identifier) Identify(rawText string) string {
	if strings.TrimSpace(rawText) == "" {
		return ShopUnknown
	}

	upper := strings.ToUpper(rawText)

	for i, rule := range id.rules {
		for _, re := range id.compiled[i] {
			if re.MatchString(upper) {
				return rule.ShopID
			}
		}
	}

	for _, re := range phonePatterns {
		if re.MatchString(upper) {
			return ShopLocal
		}
	}

	for _, city := range congoleseCities {
		if strings.Contains(upper, city) {
			return ShopLocal
		}
	}

	return ShopUnknown
}

// Known reports whether shopID names a concrete shop rather than one of the
// sentinel identities.
func Known(shopID string) bool {
	return shopID != "" && shopID != ShopUnknown && shopID != ShopLocal
}
