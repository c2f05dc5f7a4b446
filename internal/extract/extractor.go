// Package extract pulls structured receipt data out of raw OCR text using
// per-shop templates, with a generic line-scanning fallback.
package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/kandyfoma/goshopper/internal/common"
	"github.com/kandyfoma/goshopper/internal/model"
)

// DefaultCurrency is assumed when neither template nor text says otherwise.
const DefaultCurrency = "CDF"

// Default per-field patterns applied when a template leaves a field blank or
// no template exists at all.
const (
	defaultTotalPattern    = `TOTAL[:\s]*([0-9,.]+)`
	defaultSubtotalPattern = `SUBTOTAL[:\s]*([0-9,.]+)`
	defaultTaxPattern      = `TAX[:\s]*([0-9,.]+)`
	defaultDatePattern     = `(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`
)

// genericItemLine matches "name <qty> x <price>" shaped lines in the
// template-less fallback.
var genericItemLine = regexp.MustCompile(`^(.+?)\s+(\d+(?:\.\d+)?)?\s*[xX*]\s*([0-9,.]+)$`)

// Normalizer resolves an item name to the canonical catalog. Satisfied by
// catalog.Normalizer.
type Normalizer interface {
	Normalize(rawText, shopID string) model.NormalizationResult
}

// TemplateProvider supplies the extraction template for a shop, if one
// exists.
type TemplateProvider interface {
	Template(shopID string) (model.ShopTemplate, bool)
}

// Extractor applies shop templates to raw receipt text. It is stateless
// between calls and safe for concurrent use as long as its collaborators
// are.
type Extractor struct {
	templates  TemplateProvider
	normalizer Normalizer
}

// NewExtractor creates an extractor. templates may be nil, which forces the
// generic path for every shop.
func NewExtractor(templates TemplateProvider, normalizer Normalizer) *Extractor {
	return &Extractor{templates: templates, normalizer: normalizer}
}

// Extract parses rawText using shopID's template, falling back to the
// generic extractor when no template exists or the template cannot be
// applied. Individual field failures degrade to empty values; Extract never
// fails outright.
func (e *Extractor) Extract(shopID, rawText string) model.RawExtraction {
	var template model.ShopTemplate
	found := false
	if e.templates != nil {
		template, found = e.templates.Template(shopID)
	}
	if !found {
		slog.Debug("No template for shop, using generic extraction", "shop_id", shopID)
		return e.extractGeneric(rawText)
	}

	items, err := e.extractItems(rawText, template, shopID)
	if err != nil {
		slog.Warn("Template application failed, using generic extraction",
			"shop_id", shopID, "error", err)
		return e.extractGeneric(rawText)
	}

	currency := template.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	return model.RawExtraction{
		Merchant: shopID,
		Date:     extractField(rawText, template.DatePattern, defaultDatePattern),
		Items:    items,
		Subtotal: ParsePrice(extractField(rawText, template.SubtotalPattern, defaultSubtotalPattern)),
		Tax:      ParsePrice(extractField(rawText, template.TaxPattern, defaultTaxPattern)),
		Total:    ParsePrice(extractField(rawText, template.TotalPattern, defaultTotalPattern)),
		Currency: currency,
	}
}

// extractItems applies the template's item pattern globally over the text.
// A missing or invalid pattern is an application error; the caller falls
// back to the generic extractor.
func (e *Extractor) extractItems(rawText string, template model.ShopTemplate, shopID string) ([]model.ReceiptItem, error) {
	if template.ItemPattern == "" {
		return nil, fmt.Errorf("%w: template for %s has no item pattern", common.ErrTemplateApplication, template.ShopID)
	}

	re, err := regexp.Compile(`(?im)` + template.ItemPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTemplateApplication, err)
	}

	matches := re.FindAllStringSubmatch(rawText, -1)
	items := make([]model.ReceiptItem, 0, len(matches))
	for _, match := range matches {
		if len(match) < 4 {
			continue
		}
		item, ok := e.buildItem(match[1], match[2], match[3], shopID)
		if !ok {
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

// extractGeneric scans line-by-line for item-shaped lines and a total. The
// merchant stays unidentified on this path.
func (e *Extractor) extractGeneric(rawText string) model.RawExtraction {
	var items []model.ReceiptItem
	total := 0.0
	totalRe := regexp.MustCompile(`(?i)` + defaultTotalPattern)

	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if match := genericItemLine.FindStringSubmatch(line); match != nil {
			if item, ok := e.buildItem(match[1], match[2], match[3], ""); ok {
				items = append(items, item)
			}
			continue
		}

		if total == 0 {
			if match := totalRe.FindStringSubmatch(line); match != nil {
				total = ParsePrice(match[1])
			}
		}
	}

	return model.RawExtraction{
		Merchant: "Unknown",
		Date:     extractField(rawText, "", defaultDatePattern),
		Items:    items,
		Total:    total,
		Currency: DefaultCurrency,
	}
}

// buildItem parses one captured (name, qty, price) triple and attaches the
// catalog normalization. Quantity defaults to 1 when the capture is empty.
func (e *Extractor) buildItem(name, qtyStr, priceStr, shopID string) (model.ReceiptItem, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ReceiptItem{}, false
	}

	qty := 1.0
	if qtyStr = strings.TrimSpace(qtyStr); qtyStr != "" {
		parsed, err := strconv.ParseFloat(qtyStr, 64)
		if err != nil {
			return model.ReceiptItem{}, false
		}
		qty = parsed
	}

	price := ParsePrice(priceStr)

	item := model.ReceiptItem{
		Name:           name,
		NormalizedName: strings.ToLower(name),
		Quantity:       qty,
		Price:          price,
		Total:          qty * price,
	}

	if e.normalizer != nil {
		normalized := e.normalizer.Normalize(name, shopID)
		item.NormalizedName = normalized.NormalizedName
		item.ProductID = normalized.ProductID
		item.Category = normalized.Category
		item.MatchConfidence = normalized.Confidence
	}

	return item, true
}

// extractField runs a single-capture regex over the whole text and returns
// the first capture, or "" when the pattern is absent, invalid, or does not
// match.
func extractField(rawText, pattern, fallback string) string {
	if pattern == "" {
		pattern = fallback
	}
	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		slog.Warn("Invalid field pattern, skipping", "pattern", pattern, "error", err)
		return ""
	}
	match := re.FindStringSubmatch(rawText)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
