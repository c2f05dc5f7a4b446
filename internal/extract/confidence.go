package extract

import "github.com/kandyfoma/goshopper/internal/model"

// MinItemsThreshold is the item count at which an extraction earns full
// item-count credit. Fewer but nonzero items earn half.
const MinItemsThreshold = 3

// Confidence factor weights. They sum to 1; the score is normalized by the
// sum anyway so individual weights can be retuned without breaking the
// [0,1] range.
const (
	weightShopIdentified   = 0.3
	weightItemCount        = 0.3
	weightTotalPresent     = 0.2
	weightItemCompleteness = 0.2
)

// Score rates an extraction in [0,1] from four signals: shop identity,
// item count, presence of a total, and per-item completeness. Adding a
// valid total never lowers the score, and an item with no name or a zero
// price earns no completeness credit.
func Score(extraction model.RawExtraction) float64 {
	score := 0.0
	factors := 0.0

	if extraction.Merchant != "" && extraction.Merchant != "Unknown" {
		score += weightShopIdentified
	}
	factors += weightShopIdentified

	switch {
	case len(extraction.Items) >= MinItemsThreshold:
		score += weightItemCount
	case len(extraction.Items) > 0:
		score += weightItemCount / 2
	}
	factors += weightItemCount

	if extraction.Total > 0 {
		score += weightTotalPresent
	}
	factors += weightTotalPresent

	if len(extraction.Items) > 0 {
		complete := 0
		for _, item := range extraction.Items {
			if item.Name != "" && item.Price > 0 {
				complete++
			}
		}
		score += weightItemCompleteness * float64(complete) / float64(len(extraction.Items))
	}
	factors += weightItemCompleteness

	if factors == 0 {
		return 0
	}
	return score / factors
}
