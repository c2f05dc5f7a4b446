// Package model defines the core domain models used throughout the application.
package model

import "time"

// CanonicalProduct is the golden-record entry that all raw spellings of a
// product normalize to.
type CanonicalProduct struct {
	CreatedAt      time.Time
	ProductID      string
	NormalizedName string
	Category       string
	UnitOfMeasure  string
	AliasesFR      []string
	AliasesEN      []string
}

// Aliases returns every searchable name for the product, the normalized name
// included.
func (p *CanonicalProduct) Aliases() []string {
	out := make([]string, 0, 1+len(p.AliasesFR)+len(p.AliasesEN))
	out = append(out, p.NormalizedName)
	out = append(out, p.AliasesFR...)
	out = append(out, p.AliasesEN...)
	return out
}

// MappingSource indicates how a learned mapping was created.
type MappingSource string

const (
	// MappingSourceManual indicates the mapping came from an explicit learn call.
	MappingSourceManual MappingSource = "MANUAL"
	// MappingSourceReview indicates the mapping was confirmed during review.
	MappingSourceReview MappingSource = "REVIEW"
)

// LearnedMapping is a raw-text shortcut straight to a canonical product.
// The raw text is stored already cleaned; an exact cleaned-text hit always
// resolves with confidence 1.0.
type LearnedMapping struct {
	LearnedAt time.Time
	RawText   string
	ProductID string
	ShopID    string // empty means the mapping applies globally
	Source    MappingSource
	UseCount  int
}
