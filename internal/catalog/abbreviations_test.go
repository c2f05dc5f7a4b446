package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandAbbreviations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "whole phrase", input: "bnn pltn", want: "banane plantain"},
		{name: "whole phrase oil", input: "hle vgt", want: "huile vegetale"},
		{name: "multi word expansion", input: "pdt", want: "pomme de terre"},
		{name: "per token", input: "tmt frais", want: "tomate frais"},
		{name: "mixed known and unknown", input: "rz local", want: "riz local"},
		{name: "prefix extension", input: "bnns", want: "banane"},
		{name: "full word passes through", input: "banane", want: "banane"},
		{name: "single letter passes through", input: "x", want: "x"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandAbbreviations(tt.input))
		})
	}
}
