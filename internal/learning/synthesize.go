package learning

import (
	"regexp"
	"strings"
	"time"

	"github.com/kandyfoma/goshopper/internal/model"
)

// LearnedThreshold is the acceptance threshold written into synthesized
// templates. It sits below the curated default because auto-generated rules
// deserve less trust.
const LearnedThreshold = 0.7

// fieldCandidate is one entry of the multilingual pattern menu. A candidate
// is counted for a sample only when its keyword actually occurs in that
// sample's raw text.
type fieldCandidate struct {
	keyword string
	pattern string
}

// Menu order is the first-seen order used to break frequency ties.
var (
	totalCandidates = []fieldCandidate{
		{keyword: "TOTAL", pattern: `TOTAL[:\s]*([0-9,.]+)`},
		{keyword: "MONTANT", pattern: `MONTANT[:\s]*([0-9,.]+)`},
		{keyword: "SOMME", pattern: `SOMME[:\s]*([0-9,.]+)`},
	}
	subtotalCandidates = []fieldCandidate{
		{keyword: "SOUS-TOTAL", pattern: `SOUS.?TOTAL[:\s]*([0-9,.]+)`},
		{keyword: "SUBTOTAL", pattern: `SUBTOTAL[:\s]*([0-9,.]+)`},
	}
	taxCandidates = []fieldCandidate{
		{keyword: "TVA", pattern: `TVA[:\s]*([0-9,.]+)`},
		{keyword: "TAXE", pattern: `TAXE[:\s]*([0-9,.]+)`},
		{keyword: "TAX", pattern: `TAX[:\s]*([0-9,.]+)`},
	}
)

const (
	fallbackTotalPattern = `TOTAL[:\s]*([0-9,.]+)`
	learnedDatePattern   = `(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`
)

// synthesizeTemplate builds a learned ShopTemplate from the accumulated
// samples of one shop. The item regex is anchored on the escaped name of a
// corrected item, with flexible whitespace and quantity/price captures;
// summary-field patterns come from the multilingual menu, scored by how
// many samples contain their keyword. Returns false when the samples carry
// nothing usable.
func synthesizeTemplate(shopID string, samples []model.LearningSample) (model.ShopTemplate, bool) {
	if len(samples) == 0 {
		return model.ShopTemplate{}, false
	}

	itemPattern := selectItemPattern(samples)
	if itemPattern == "" {
		return model.ShopTemplate{}, false
	}

	template := model.ShopTemplate{
		UpdatedAt:           time.Now(),
		ShopID:              shopID,
		ItemPattern:         itemPattern,
		TotalPattern:        selectFieldPattern(samples, totalCandidates, fallbackTotalPattern),
		SubtotalPattern:     selectFieldPattern(samples, subtotalCandidates, ""),
		TaxPattern:          selectFieldPattern(samples, taxCandidates, ""),
		DatePattern:         learnedDatePattern,
		Currency:            majorityCurrency(samples),
		Source:              model.TemplateLearned,
		ConfidenceThreshold: LearnedThreshold,
		SampleCount:         len(samples),
	}
	return template, true
}

// selectItemPattern builds one candidate per sample, anchored on the first
// corrected item name, and picks the most frequent across samples; ties keep
// first-seen order.
func selectItemPattern(samples []model.LearningSample) string {
	var candidates []string
	for _, sample := range samples {
		for _, item := range sample.Correction.Items {
			name := strings.TrimSpace(item.Name)
			if name == "" {
				continue
			}
			candidates = append(candidates,
				`(`+regexp.QuoteMeta(name)+`.*?)\s+(\d+(?:\.\d+)?)?\s*[xX*]\s*([0-9,.]+)`)
			break
		}
	}
	return mostFrequent(candidates)
}

// selectFieldPattern counts, for each menu candidate, the samples whose raw
// text contains its keyword, and returns the pattern of the most frequent
// one. With no occurrences at all the fallback applies.
func selectFieldPattern(samples []model.LearningSample, menu []fieldCandidate, fallback string) string {
	counts := make([]int, len(menu))
	for _, sample := range samples {
		upper := strings.ToUpper(sample.RawText)
		for i, candidate := range menu {
			if strings.Contains(upper, candidate.keyword) {
				counts[i]++
			}
		}
	}

	bestIdx := -1
	for i, count := range counts {
		if count > 0 && (bestIdx == -1 || count > counts[bestIdx]) {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return fallback
	}
	return menu[bestIdx].pattern
}

// majorityCurrency returns the most common currency across the corrections,
// first-seen order breaking ties. CDF when no sample reports one.
func majorityCurrency(samples []model.LearningSample) string {
	var currencies []string
	for _, sample := range samples {
		if sample.Correction.Currency != "" {
			currencies = append(currencies, sample.Correction.Currency)
		}
	}
	if winner := mostFrequent(currencies); winner != "" {
		return winner
	}
	return "CDF"
}

// mostFrequent returns the most common value, ties broken by first
// appearance. Empty input yields "".
func mostFrequent(values []string) string {
	counts := make(map[string]int, len(values))
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	best := ""
	for _, v := range order {
		if best == "" || counts[v] > counts[best] {
			best = v
		}
	}
	return best
}
