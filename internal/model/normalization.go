package model

// MatchMethod indicates which stage of the normalization cascade produced a
// match.
type MatchMethod string

// Match method constants, in cascade order.
const (
	MatchExact        MatchMethod = "exact"
	MatchLearned      MatchMethod = "learned"
	MatchAbbreviation MatchMethod = "abbreviation"
	MatchTranslation  MatchMethod = "translation"
	MatchFuzzy        MatchMethod = "fuzzy"
	MatchSemantic     MatchMethod = "semantic"
	MatchNone         MatchMethod = "none"
)

// Suggestion is one ranked candidate attached to a normalization result for
// manual review.
type Suggestion struct {
	ProductID      string  `json:"product_id"`
	NormalizedName string  `json:"normalized_name"`
	Score          float64 `json:"score"`
}

// NormalizationResult is the outcome of matching one raw item text against
// the catalog.
type NormalizationResult struct {
	ProductID      string       `json:"product_id,omitempty"`
	NormalizedName string       `json:"normalized_name"`
	Category       string       `json:"category,omitempty"`
	Method         MatchMethod  `json:"match_method"`
	Confidence     float64      `json:"confidence"`
	NeedsReview    bool         `json:"needs_review"`
	Suggestions    []Suggestion `json:"suggestions,omitempty"`
}

// Matched reports whether the cascade resolved to a canonical product.
func (r *NormalizationResult) Matched() bool {
	return r.ProductID != "" && r.Method != MatchNone
}

// BatchItem is one record of a batch normalization input.
type BatchItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

// BatchResult pairs a batch input with its normalization, preserving input
// order.
type BatchResult struct {
	Input         BatchItem           `json:"input"`
	Normalization NormalizationResult `json:"normalization"`
}
