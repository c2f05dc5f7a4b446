package semantic

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fittedEmbedder() *TFIDFEmbedder {
	e := NewTFIDFEmbedder("english")
	e.Fit([]string{
		"red palm oil",
		"vegetable oil",
		"white rice",
		"brown rice",
		"fine salt",
	})
	return e
}

func TestEmbedSelfSimilarity(t *testing.T) {
	e := fittedEmbedder()

	vec := e.Embed("palm oil")
	assert.InDelta(t, 1.0, Cosine(vec, vec), 1e-9)
}

func TestEmbedUnknownTokensAreZero(t *testing.T) {
	e := fittedEmbedder()

	vec := e.Embed("xylophone")
	for _, v := range vec {
		assert.Zero(t, v)
	}
	assert.Zero(t, Cosine(vec, e.Embed("palm oil")))
}

func TestEmbedEmptyInput(t *testing.T) {
	e := fittedEmbedder()

	vec := e.Embed("")
	require.Len(t, vec, len(e.vocabulary))
	assert.Zero(t, Cosine(vec, e.Embed("rice")))
}

func TestSharedTokensScoreHigherThanDisjoint(t *testing.T) {
	e := fittedEmbedder()

	related := Cosine(e.Embed("palm oil"), e.Embed("vegetable oil"))
	unrelated := Cosine(e.Embed("palm oil"), e.Embed("fine salt"))
	assert.Greater(t, related, unrelated)
}

func TestStemmingCollapsesInflections(t *testing.T) {
	e := NewTFIDFEmbedder("english")
	e.Fit([]string{"fresh tomato", "green pepper"})

	// "tomatoes" stems to the same dimension as "tomato".
	score := Cosine(e.Embed("tomatoes"), e.Embed("tomato"))
	assert.Greater(t, score, 0.5)
}

func TestNoStemmingWhenLanguageEmpty(t *testing.T) {
	e := NewTFIDFEmbedder("")
	e.Fit([]string{"fresh tomato"})

	score := Cosine(e.Embed("tomatoes"), e.Embed("tomato"))
	assert.Zero(t, score)
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{name: "identical unit vectors", a: []float64{1, 0}, b: []float64{1, 0}, want: 1.0},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0.0},
		{name: "negative dot clamps to zero", a: []float64{1, 0}, b: []float64{-1, 0}, want: 0.0},
		{name: "length mismatch", a: []float64{1}, b: []float64{1, 0}, want: 0.0},
		{name: "both empty", a: nil, b: nil, want: 0.0},
		// Dot product, not a full cosine: identical non-unit vectors do
		// not score 1.
		{name: "unnormalized inputs scale the score", a: []float64{0.5, 0}, b: []float64{0.5, 0}, want: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestConcurrentEmbed(t *testing.T) {
	e := fittedEmbedder()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = e.Embed("red palm oil")
			}
		}()
	}
	wg.Wait()
}
