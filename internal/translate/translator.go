// Package translate provides bidirectional French/English lexical lookup and
// language detection for product names.
package translate

import (
	"sort"
	"strings"
	"sync"
)

// Language codes returned by Detect.
const (
	LangFrench  = "fr"
	LangEnglish = "en"
	LangUnknown = "unknown"
)

// maxPhraseLen is the longest multi-word phrase attempted during greedy
// phrase matching.
const maxPhraseLen = 4

// Translator performs dictionary-based translation between French and
// English. Lookups are greedy: the longest known phrase starting at the
// current word wins. Safe for concurrent use; AddTranslation takes the
// write lock.
type Translator struct {
	mu     sync.RWMutex
	frToEn map[string]string
	enToFr map[string]string
}

// New creates a Translator seeded with the built-in product lexicon.
func New() *Translator {
	t := &Translator{
		frToEn: make(map[string]string, len(defaultLexicon)),
		enToFr: make(map[string]string, len(defaultLexicon)),
	}
	// Several English terms have more than one French spelling. Seeding in
	// sorted key order with first-wins keeps the reverse map stable across
	// runs: "potato" always maps back to "patate", never "pomme de terre".
	keys := make([]string, 0, len(defaultLexicon))
	for fr := range defaultLexicon {
		keys = append(keys, fr)
	}
	sort.Strings(keys)
	for _, fr := range keys {
		en := defaultLexicon[fr]
		t.frToEn[fr] = en
		if _, ok := t.enToFr[en]; !ok {
			t.enToFr[en] = fr
		}
	}
	return t
}

// ToEnglish translates French text to English word-by-word, keeping words it
// does not know. The input is lowercased first.
func (t *Translator) ToEnglish(text string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return translateWords(text, t.frToEn)
}

// ToFrench translates English text to French word-by-word, keeping words it
// does not know.
func (t *Translator) ToFrench(text string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return translateWords(text, t.enToFr)
}

func translateWords(text string, dict map[string]string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return ""
	}

	if hit, ok := dict[text]; ok {
		return hit
	}

	words := strings.Fields(text)
	out := make([]string, 0, len(words))

	for i := 0; i < len(words); {
		matched := false
		for n := maxPhraseLen; n > 0; n-- {
			if i+n > len(words) {
				continue
			}
			phrase := strings.Join(words[i:i+n], " ")
			if hit, ok := dict[phrase]; ok {
				out = append(out, hit)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, words[i])
			i++
		}
	}

	return strings.Join(out, " ")
}

// Detect guesses the language of text by counting dictionary hits per
// language. Ties (including zero hits) are unknown.
func (t *Translator) Detect(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return LangUnknown
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	var frCount, enCount int
	for _, word := range strings.Fields(text) {
		if _, ok := t.frToEn[word]; ok {
			frCount++
		}
		if _, ok := t.enToFr[word]; ok {
			enCount++
		}
	}

	switch {
	case frCount > enCount:
		return LangFrench
	case enCount > frCount:
		return LangEnglish
	default:
		return LangUnknown
	}
}

// ToPivot normalizes text to the pivot language so matching is consistent
// regardless of input language. Text already in the pivot language (or
// undetectable) is returned lowercased.
func (t *Translator) ToPivot(text, pivot string) string {
	if text == "" {
		return ""
	}

	detected := t.Detect(text)

	switch pivot {
	case LangEnglish:
		if detected == LangFrench {
			return t.ToEnglish(text)
		}
	case LangFrench:
		if detected == LangEnglish {
			return t.ToFrench(text)
		}
	}
	return strings.ToLower(text)
}

// AddTranslation registers a new French/English pair in both directions.
func (t *Translator) AddTranslation(french, english string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frToEn[strings.ToLower(french)] = strings.ToLower(english)
	t.enToFr[strings.ToLower(english)] = strings.ToLower(french)
}

// Variants returns the deduplicated language variants of text: the original
// lowercased plus its French and English translations where they differ.
func (t *Translator) Variants(text string) []string {
	lower := strings.ToLower(text)
	variants := []string{lower}

	if en := t.ToEnglish(text); en != lower {
		variants = append(variants, en)
	}
	if fr := t.ToFrench(text); fr != lower {
		variants = append(variants, fr)
	}

	seen := make(map[string]struct{}, len(variants))
	out := variants[:0]
	for _, v := range variants {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
