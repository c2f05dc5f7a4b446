package semantic

import "sort"

// Matcher ranks candidate texts against a query in the embedder's vector
// space.
type Matcher struct {
	embedder Embedder
}

// NewMatcher wraps an embedder. Pass a fitted TFIDFEmbedder for the default
// behavior.
func NewMatcher(embedder Embedder) *Matcher {
	return &Matcher{embedder: embedder}
}

// Similarity scores two texts in [0,1].
func (m *Matcher) Similarity(a, b string) float64 {
	return Cosine(m.embedder.Embed(a), m.embedder.Embed(b))
}

// BestMatch returns the highest-scoring candidate and its score. An empty
// candidate list, or one where nothing scores above zero, yields an empty
// match with score 0.
func (m *Matcher) BestMatch(query string, candidates []string) (string, float64) {
	ranked := m.Rank(query, candidates, 1)
	if len(ranked) == 0 || ranked[0].Score <= 0 {
		return "", 0.0
	}
	return ranked[0].Candidate, ranked[0].Score
}

// Ranked pairs a candidate with its similarity score.
type Ranked struct {
	Candidate string
	Score     float64
}

// Rank scores every candidate against the query and returns the top k in
// descending score order. Ties keep input order.
func (m *Matcher) Rank(query string, candidates []string, k int) []Ranked {
	queryVec := m.embedder.Embed(query)

	results := make([]Ranked, 0, len(candidates))
	for _, candidate := range candidates {
		results = append(results, Ranked{
			Candidate: candidate,
			Score:     Cosine(queryVec, m.embedder.Embed(candidate)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}
