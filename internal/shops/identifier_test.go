package shops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentify(t *testing.T) {
	id := NewIdentifier(DefaultRules())

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "keyword match",
			text: "SHOPRITE SUPERMARKET\nKinshasa, DRC\nTOTAL: 15000",
			want: "ShopD",
		},
		{
			name: "keyword match lowercase input",
			text: "welcome to carrefour market\ntotal 12,50",
			want: "ShopC",
		},
		{
			name: "accented keyword",
			text: "GRAND MARCHÉ\nAV DE LA PAIX",
			want: "ShopB",
		},
		{
			name: "table order breaks ties",
			text: "SHOP A SUPERMARKET near GRAND MARCHE",
			want: "ShopA",
		},
		{
			name: "word boundary no substring match",
			text: "TOTALLY FRESH PRODUCE",
			want: ShopUnknown,
		},
		{
			name: "fuel station",
			text: "STATION TOTAL\nLITRE: 45.00",
			want: "TotalEnergies",
		},
		{
			name: "drc phone number means local shop",
			text: "CHEZ MAMAN\nTEL: +243 812 345 678",
			want: ShopLocal,
		},
		{
			name: "phone with separators",
			text: "ALIMENTATION KIM\nTEL 243-998-123-456",
			want: ShopLocal,
		},
		{
			name: "city name means local shop",
			text: "DEPOT CENTRAL\nLUBUMBASHI",
			want: ShopLocal,
		},
		{
			name: "no markers at all",
			text: "random receipt text with nothing identifying",
			want: ShopUnknown,
		},
		{
			name: "empty input",
			text: "",
			want: ShopUnknown,
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: ShopUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, id.Identify(tt.text))
		})
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("ShopD"))
	assert.False(t, Known(ShopUnknown))
	assert.False(t, Known(ShopLocal))
	assert.False(t, Known(""))
}
