// Package learning accumulates AI-corrected extraction samples and
// synthesizes per-shop extraction templates once enough evidence exists.
package learning

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kandyfoma/goshopper/internal/model"
)

var (
	totalKeywords = []string{"total", "montant", "somme", "totaal"}

	itemLineRe = regexp.MustCompile(`[a-zA-Z]{3,}.*\d`)
	quantityRe = regexp.MustCompile(`\d+\s*[xX*]`)
	priceRe    = regexp.MustCompile(`\d+[,.]\d{2}`)
	notWordRe  = regexp.MustCompile(`[^\w\s]`)
)

// ExtractTextFeatures derives the structural features of one raw receipt:
// where total-like keywords sit relative to document length, which lines
// look like items, and the header/footer slices by position ratio.
func ExtractTextFeatures(rawText string) model.TextFeatures {
	var lines []string
	for _, line := range strings.Split(rawText, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	var features model.TextFeatures
	total := len(lines)
	for i, line := range lines {
		lower := strings.ToLower(line)

		for _, keyword := range totalKeywords {
			if strings.Contains(lower, keyword) {
				features.TotalLines = append(features.TotalLines, model.LineFeature{
					Line:     line,
					Position: i,
					Ratio:    float64(i) / float64(total),
				})
				break
			}
		}

		if itemLineRe.MatchString(line) {
			features.ItemLines = append(features.ItemLines, model.LineFeature{
				Line:        line,
				Position:    i,
				Ratio:       float64(i) / float64(total),
				HasQuantity: quantityRe.MatchString(line),
				HasPrice:    priceRe.MatchString(line),
			})
		}

		if float64(i) < float64(total)*0.3 {
			features.HeaderLines = append(features.HeaderLines, line)
		}
		if float64(i) > float64(total)*0.7 {
			features.FooterLines = append(features.FooterLines, line)
		}
	}

	return features
}

// AttachItemFeatures records the quantity/price string formats and name
// separators observed in a correction's items.
func AttachItemFeatures(features *model.TextFeatures, items []model.ReceiptItem) {
	seenQty := make(map[string]struct{})
	seenPrice := make(map[string]struct{})
	seenSep := make(map[string]struct{})

	for _, item := range items {
		if item.Quantity != 1 {
			qty := strconv.FormatFloat(item.Quantity, 'f', -1, 64)
			if _, ok := seenQty[qty]; !ok {
				seenQty[qty] = struct{}{}
				features.QuantityFormats = append(features.QuantityFormats, qty)
			}
		}
		if item.Price > 0 {
			price := fmt.Sprintf("%.2f", item.Price)
			if _, ok := seenPrice[price]; !ok {
				seenPrice[price] = struct{}{}
				features.PriceFormats = append(features.PriceFormats, price)
			}
		}
		for _, sep := range notWordRe.FindAllString(item.Name, -1) {
			if _, ok := seenSep[sep]; !ok {
				seenSep[sep] = struct{}{}
				features.NameSeparators = append(features.NameSeparators, sep)
			}
		}
	}
}
