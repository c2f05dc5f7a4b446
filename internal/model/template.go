package model

import "time"

// TemplateSource indicates how a shop template was created.
type TemplateSource string

const (
	// TemplateCurated indicates a hand-written template loaded at startup.
	TemplateCurated TemplateSource = "CURATED"
	// TemplateLearned indicates a template synthesized from corrected samples.
	TemplateLearned TemplateSource = "LEARNED"
)

// ShopTemplate holds the extraction patterns for one shop. Patterns are kept
// as data (regex strings), never as code, so learned templates can be
// persisted and re-synthesized safely.
type ShopTemplate struct {
	UpdatedAt           time.Time
	ShopID              string
	ItemPattern         string
	TotalPattern        string
	SubtotalPattern     string
	TaxPattern          string
	DatePattern         string
	Currency            string
	Source              TemplateSource
	ConfidenceThreshold float64
	SampleCount         int
}

// LearningSample is one AI-corrected observation retained for template
// synthesis. Samples are append-only; synthesis never deletes them.
type LearningSample struct {
	CapturedAt      time.Time
	ID              string
	ShopID          string
	RawText         string
	Correction      RawExtraction
	LocalConfidence float64
	Features        TextFeatures
}

// TextFeatures are the structural features derived from a sample's raw text
// and corrected items, used to anchor synthesized patterns.
type TextFeatures struct {
	TotalLines      []LineFeature
	ItemLines       []LineFeature
	HeaderLines     []string
	FooterLines     []string
	QuantityFormats []string
	PriceFormats    []string
	NameSeparators  []string
}

// LineFeature describes where a structurally interesting line sits in the
// document.
type LineFeature struct {
	Line        string
	Position    int
	Ratio       float64
	HasQuantity bool
	HasPrice    bool
}
