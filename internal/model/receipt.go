package model

import "time"

// ReceiptItem is one parsed receipt line with its normalization attached.
type ReceiptItem struct {
	Name            string  `json:"name"`
	NormalizedName  string  `json:"normalized_name,omitempty"`
	ProductID       string  `json:"product_id,omitempty"`
	Category        string  `json:"category,omitempty"`
	Quantity        float64 `json:"qty"`
	Price           float64 `json:"price"`
	Total           float64 `json:"total"`
	MatchConfidence float64 `json:"match_confidence"`
}

// RawExtraction is the uncalibrated output of one local extraction pass,
// before confidence scoring and output normalization.
type RawExtraction struct {
	Merchant string
	Date     string
	Currency string
	Items    []ReceiptItem
	Subtotal float64
	Tax      float64
	Total    float64
}

// ProcessingMethod indicates which path produced a processing result.
type ProcessingMethod string

// Processing method constants.
const (
	ProcessedLocal  ProcessingMethod = "local"
	ProcessedAI     ProcessingMethod = "ai"
	ProcessedFailed ProcessingMethod = "failed"
)

// ProcessingResult is the final, shape-normalized output of one document.
type ProcessingResult struct {
	Merchant   string           `json:"merchant"`
	Date       string           `json:"date,omitempty"`
	Currency   string           `json:"currency"`
	Items      []ReceiptItem    `json:"items"`
	Subtotal   float64          `json:"subtotal,omitempty"`
	Tax        float64          `json:"tax,omitempty"`
	Total      float64          `json:"total"`
	Method     ProcessingMethod `json:"processing_method"`
	Confidence float64          `json:"confidence"`
	RawText    string           `json:"raw_text,omitempty"`
	Success    bool             `json:"success"`
	Error      string           `json:"error,omitempty"`
	Elapsed    time.Duration    `json:"-"`
}
