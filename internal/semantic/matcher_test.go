package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fittedMatcher() *Matcher {
	return NewMatcher(fittedEmbedder())
}

func TestBestMatch(t *testing.T) {
	m := fittedMatcher()
	candidates := []string{"red palm oil", "white rice", "fine salt"}

	best, score := m.BestMatch("palm oil", candidates)
	assert.Equal(t, "red palm oil", best)
	assert.Greater(t, score, 0.5)
}

func TestBestMatchEmptyCandidates(t *testing.T) {
	m := fittedMatcher()

	best, score := m.BestMatch("palm oil", nil)
	assert.Empty(t, best)
	assert.Zero(t, score)
}

func TestBestMatchNoOverlap(t *testing.T) {
	m := fittedMatcher()

	best, score := m.BestMatch("xylophone", []string{"white rice", "fine salt"})
	assert.Empty(t, best)
	assert.Zero(t, score)
}

func TestRank(t *testing.T) {
	m := fittedMatcher()
	candidates := []string{"fine salt", "brown rice", "white rice"}

	ranked := m.Rank("white rice", candidates, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "white rice", ranked[0].Candidate)
	assert.Equal(t, "brown rice", ranked[1].Candidate)
	assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
}

func TestRankZeroKeepsAll(t *testing.T) {
	m := fittedMatcher()
	candidates := []string{"fine salt", "white rice"}

	ranked := m.Rank("rice", candidates, 0)
	assert.Len(t, ranked, 2)
}

func TestSimilaritySymmetry(t *testing.T) {
	m := fittedMatcher()

	ab := m.Similarity("palm oil", "vegetable oil")
	ba := m.Similarity("vegetable oil", "palm oil")
	assert.InDelta(t, ab, ba, 1e-9)
}
