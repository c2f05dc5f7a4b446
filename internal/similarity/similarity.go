// Package similarity provides the string-distance primitives used by the
// product matching cascade.
package similarity

import "strings"

// Weights blends edit-distance similarity with token-set overlap. Which pair
// applies depends on whether the input is a single token or multi-word: edit
// distance carries short inputs, Jaccard carries phrases. The split is a
// tunable heuristic, not a derived constant.
type Weights struct {
	SingleTokenEdit    float64
	SingleTokenJaccard float64
	MultiTokenEdit     float64
	MultiTokenJaccard  float64
}

// DefaultWeights returns the weighting validated against the matching
// scenarios in the test suite.
func DefaultWeights() Weights {
	return Weights{
		SingleTokenEdit:    0.7,
		SingleTokenJaccard: 0.3,
		MultiTokenEdit:     0.4,
		MultiTokenJaccard:  0.6,
	}
}

// Levenshtein returns the edit distance between a and b, operating on runes.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// LevenshteinSimilarity returns 1 - distance/max(len(a), len(b)), in [0,1].
// Two empty strings are identical.
func LevenshteinSimilarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	return 1.0 - float64(Levenshtein(a, b))/float64(maxLen)
}

// Jaccard returns |intersection| / |union| over whitespace-tokenized word
// sets. Permutations of the same token multiset score 1.0.
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	var intersection int
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

// Combined blends Levenshtein and Jaccard similarity using w, weighting by
// the token count of the query a. The result is always in [0,1].
func Combined(a, b string, w Weights) float64 {
	edit := LevenshteinSimilarity(a, b)
	jaccard := Jaccard(a, b)

	var score float64
	if len(strings.Fields(a)) <= 1 {
		score = w.SingleTokenEdit*edit + w.SingleTokenJaccard*jaccard
	} else {
		score = w.MultiTokenEdit*edit + w.MultiTokenJaccard*jaccard
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
