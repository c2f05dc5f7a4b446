// Package ai provides the external AI extraction collaborators used when
// local template extraction is not confident enough.
package ai

import (
	"context"
)

// Item is one line item as reported by the AI service.
type Item struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// Request carries everything an extraction call needs. ImageData may be nil
// when only OCR text is available.
type Request struct {
	OCRText   string
	ImageData []byte
	ImageMIME string
}

// Response is the typed contract every provider must satisfy. Providers
// normalize their raw output into this shape before returning.
type Response struct {
	Merchant   string  `json:"merchant"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Currency   string  `json:"currency"`
	Items      []Item  `json:"items"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	Success    bool    `json:"success"`
	Confidence float64 `json:"confidence"`
}

// Client is the provider-independent extraction contract.
type Client interface {
	// Extract sends the receipt to the AI service and returns the
	// normalized result. Unavailability (missing credentials, network
	// failure) is reported as an error wrapping common.ErrAIUnavailable;
	// malformed output wraps common.ErrAIResponseFormat.
	Extract(ctx context.Context, req Request) (*Response, error)
	// Name identifies the provider for logging.
	Name() string
}
