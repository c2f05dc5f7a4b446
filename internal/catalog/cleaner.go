package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// noiseWords are articles and stopwords stripped from raw item text in both
// languages before matching.
var noiseWords = map[string]struct{}{
	"le": {}, "la": {}, "les": {}, "de": {}, "du": {}, "des": {},
	"un": {}, "une": {}, "et": {}, "au": {}, "aux": {},
	"the": {}, "a": {}, "an": {}, "of": {}, "and": {}, "with": {},
}

// accentStripper decomposes to NFD, drops combining marks, and recomposes.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CleanText normalizes raw item text for matching: lowercase, accents
// stripped, punctuation removed, noise words dropped, whitespace collapsed.
func CleanText(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return ""
	}

	if stripped, _, err := transform.String(accentStripper, text); err == nil {
		text = stripped
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, noisy := noiseWords[f]; noisy {
			continue
		}
		out = append(out, f)
	}

	return strings.Join(out, " ")
}
