package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "plain integer", input: "2500", want: 2500},
		{name: "plain decimal", input: "45.50", want: 45.50},
		{name: "comma decimal", input: "12,50", want: 12.50},
		{name: "european thousands and decimal", input: "1.500,75", want: 1500.75},
		{name: "currency prefix stripped", input: "FC 2500", want: 2500},
		{name: "currency suffix stripped", input: "2500 CDF", want: 2500},
		{name: "comma treated as decimal when alone", input: "15,000", want: 15.0},
		{name: "garbage", input: "abc", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "multiple commas unparseable", input: "1,234,56", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParsePrice(tt.input), 0.0001)
		})
	}
}
