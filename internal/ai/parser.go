package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kandyfoma/goshopper/internal/common"
)

// defaultAIConfidence is assigned when the provider reports none.
const defaultAIConfidence = 0.9

// rawResponse tolerates the loose typing AI services produce: numbers may
// arrive as strings or be absent, quantities may be floats.
type rawResponse struct {
	Merchant   string          `json:"merchant"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	Currency   string          `json:"currency"`
	Items      []rawItem       `json:"items"`
	Subtotal   json.RawMessage `json:"subtotal"`
	Tax        json.RawMessage `json:"tax"`
	Total      json.RawMessage `json:"total"`
	Success    *bool           `json:"success"`
	Confidence float64         `json:"confidence"`
}

type rawItem struct {
	Name     string          `json:"name"`
	Price    json.RawMessage `json:"price"`
	Quantity json.RawMessage `json:"quantity"`
}

// ParseResponse turns the model's text output into a validated Response.
// Markdown code fences are stripped first. Items without a name or with a
// non-positive price are dropped; a missing document total is recomputed
// from the retained items. Malformed JSON wraps common.ErrAIResponseFormat.
func ParseResponse(text string) (*Response, error) {
	text = stripFences(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response body", common.ErrAIResponseFormat)
	}

	var raw rawResponse
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAIResponseFormat, err)
	}

	resp := &Response{
		Merchant:   strings.TrimSpace(raw.Merchant),
		Date:       raw.Date,
		Time:       raw.Time,
		Currency:   raw.Currency,
		Subtotal:   looseNumber(raw.Subtotal),
		Tax:        looseNumber(raw.Tax),
		Total:      looseNumber(raw.Total),
		Success:    raw.Success == nil || *raw.Success,
		Confidence: raw.Confidence,
	}
	if resp.Currency == "" {
		resp.Currency = "CDF"
	}
	if resp.Confidence <= 0 || resp.Confidence > 1 {
		resp.Confidence = defaultAIConfidence
	}

	for _, item := range raw.Items {
		name := strings.TrimSpace(item.Name)
		price := looseNumber(item.Price)
		if name == "" || price <= 0 {
			continue
		}
		qty := looseNumber(item.Quantity)
		if qty <= 0 {
			qty = 1
		}
		resp.Items = append(resp.Items, Item{Name: name, Price: price, Quantity: qty})
	}

	if resp.Total == 0 {
		for _, item := range resp.Items {
			resp.Total += item.Price * item.Quantity
		}
	}

	return resp, nil
}

// stripFences removes a surrounding markdown code block, if any.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// looseNumber reads a JSON value that may be a number, a numeric string, or
// null/absent. Anything unreadable is 0.
func looseNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var parsed float64
		if _, err := fmt.Sscanf(strings.TrimSpace(s), "%g", &parsed); err == nil {
			return parsed
		}
	}
	return 0
}
