package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kandyfoma/goshopper/internal/model"
)

func completeItems(n int) []model.ReceiptItem {
	items := make([]model.ReceiptItem, n)
	for i := range items {
		items[i] = model.ReceiptItem{Name: "riz", Quantity: 1, Price: 1000, Total: 1000}
	}
	return items
}

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		extraction model.RawExtraction
		want       float64
	}{
		{
			name:       "empty extraction",
			extraction: model.RawExtraction{Merchant: "Unknown"},
			want:       0.0,
		},
		{
			name: "everything present",
			extraction: model.RawExtraction{
				Merchant: "ShopD",
				Items:    completeItems(3),
				Total:    3000,
			},
			want: 1.0,
		},
		{
			name: "unknown shop costs its factor",
			extraction: model.RawExtraction{
				Merchant: "Unknown",
				Items:    completeItems(3),
				Total:    3000,
			},
			want: 0.7,
		},
		{
			name: "partial item credit below threshold",
			extraction: model.RawExtraction{
				Merchant: "ShopD",
				Items:    completeItems(2),
				Total:    2000,
			},
			want: 0.85,
		},
		{
			name: "no total",
			extraction: model.RawExtraction{
				Merchant: "ShopD",
				Items:    completeItems(3),
			},
			want: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.extraction), 0.0001)
		})
	}
}

func TestScoreBounds(t *testing.T) {
	score := Score(model.RawExtraction{
		Merchant: "ShopD",
		Items:    completeItems(10),
		Total:    99999,
	})
	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestScoreTotalMonotonic(t *testing.T) {
	without := model.RawExtraction{Merchant: "ShopD", Items: completeItems(3)}
	with := without
	with.Total = 5000

	assert.GreaterOrEqual(t, Score(with), Score(without))
}

func TestScoreIncompleteItemEarnsNoCredit(t *testing.T) {
	base := model.RawExtraction{Merchant: "ShopD", Items: completeItems(3), Total: 3000}
	padded := base
	padded.Items = append(completeItems(3), model.ReceiptItem{Name: "", Price: 0})

	assert.Less(t, Score(padded), Score(base),
		"an empty item dilutes completeness instead of adding credit")
}
