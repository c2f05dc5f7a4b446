// Package semantic provides lightweight vector-space matching used as the
// last resort of the product normalization cascade.
package semantic

import (
	"math"
	"strings"
	"sync"

	"github.com/kljensen/snowball"
)

// Embedder converts text into a vector. TFIDFEmbedder is the default; a
// higher-quality backend can be swapped in behind the same interface.
type Embedder interface {
	Embed(text string) []float64
}

// TFIDFEmbedder builds term-frequency/inverse-document-frequency vectors
// over a fixed corpus vocabulary. Fit must run before Embed. Safe for
// concurrent Embed calls after fitting.
type TFIDFEmbedder struct {
	mu         sync.RWMutex
	vocabulary map[string]int
	idf        map[string]float64
	language   string
	stemCache  map[string]string
	stemMu     sync.Mutex
}

// NewTFIDFEmbedder creates an unfitted embedder. Tokens are stemmed with the
// Snowball algorithm for the given language ("english" or "french") so that
// inflected forms share vector dimensions; an empty language disables
// stemming.
func NewTFIDFEmbedder(language string) *TFIDFEmbedder {
	return &TFIDFEmbedder{
		vocabulary: make(map[string]int),
		idf:        make(map[string]float64),
		language:   language,
		stemCache:  make(map[string]string),
	}
}

// Fit builds the vocabulary and IDF table from the corpus.
func (e *TFIDFEmbedder) Fit(corpus []string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.vocabulary = make(map[string]int)
	e.idf = make(map[string]float64)

	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range e.tokenize(doc) {
			if _, ok := e.vocabulary[tok]; !ok {
				e.vocabulary[tok] = len(e.vocabulary)
			}
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}

	docCount := float64(len(corpus))
	for tok := range e.vocabulary {
		if n := docFreq[tok]; n > 0 {
			e.idf[tok] = math.Log(docCount / float64(n))
		}
	}
}

// Embed converts text into a unit-normalized TF-IDF vector over the fitted
// vocabulary. Unknown tokens contribute nothing.
func (e *TFIDFEmbedder) Embed(text string) []float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	vector := make([]float64, len(e.vocabulary))

	tokens := e.tokenize(text)
	if len(tokens) == 0 {
		return vector
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	for tok, count := range counts {
		idx, ok := e.vocabulary[tok]
		if !ok {
			continue
		}
		tf := float64(count) / float64(len(tokens))
		vector[idx] = tf * e.idf[tok]
	}

	var magnitude float64
	for _, v := range vector {
		magnitude += v * v
	}
	if magnitude > 0 {
		magnitude = math.Sqrt(magnitude)
		for i := range vector {
			vector[i] /= magnitude
		}
	}

	return vector
}

func (e *TFIDFEmbedder) tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, e.stem(f))
	}
	return out
}

func (e *TFIDFEmbedder) stem(word string) string {
	if e.language == "" {
		return word
	}

	e.stemMu.Lock()
	defer e.stemMu.Unlock()

	if cached, ok := e.stemCache[word]; ok {
		return cached
	}

	stemmed, err := snowball.Stem(word, e.language, false)
	if err != nil || stemmed == "" {
		stemmed = word
	}
	e.stemCache[word] = stemmed
	return stemmed
}

// Cosine returns the cosine similarity of two unit-normalized vectors,
// clamped to [0,1]. It computes a plain dot product, so callers must pass
// vectors of length 1 (as Embed produces); unnormalized inputs yield a
// scaled score, not a true cosine. Mismatched lengths score 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}

	if dot < 0 {
		return 0.0
	}
	if dot > 1 {
		return 1.0
	}
	return dot
}
