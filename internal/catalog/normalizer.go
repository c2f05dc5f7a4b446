// Package catalog implements the cascading product normalizer that resolves
// raw receipt item text to canonical catalog products.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kandyfoma/goshopper/internal/common"
	"github.com/kandyfoma/goshopper/internal/model"
	"github.com/kandyfoma/goshopper/internal/semantic"
	"github.com/kandyfoma/goshopper/internal/service"
	"github.com/kandyfoma/goshopper/internal/similarity"
	"github.com/kandyfoma/goshopper/internal/translate"
)

// Confidence assigned per cascade stage. Exact and learned hits are
// definitional; abbreviation and translation hits pass through a lossy
// rewrite first and score slightly below them.
const (
	confidenceExact        = 1.0
	confidenceLearned      = 1.0
	confidenceAbbreviation = 0.95
	confidenceTranslation  = 0.90
)

// Config holds the tunable parameters of the normalizer.
type Config struct {
	Translator      *translate.Translator
	Weights         similarity.Weights
	AcceptThreshold float64
	FuzzyFloor      float64
	SemanticFloor   float64
	SuggestionLimit int
}

// DefaultConfig returns the thresholds the matching scenarios are validated
// against.
func DefaultConfig() Config {
	return Config{
		Translator:      translate.New(),
		Weights:         similarity.DefaultWeights(),
		AcceptThreshold: 0.85,
		FuzzyFloor:      0.60,
		SemanticFloor:   0.50,
		SuggestionLimit: 3,
	}
}

type indexEntry struct {
	alias     string
	pivot     string
	productID string
}

// Normalizer resolves raw item text to canonical products through a staged
// cascade: learned mappings, exact lookup, abbreviation expansion,
// cross-language pivot, fuzzy similarity, then semantic fallback. Reads are
// lock-free of each other; learned mappings and catalog additions take the
// write lock and are visible to subsequent calls.
type Normalizer struct {
	cfg     Config
	storage service.Storage

	mu       sync.RWMutex
	products []model.CanonicalProduct
	byID     map[string]int
	index    map[string]string
	entries  []indexEntry
	mappings map[string]string
	embedder *semantic.TFIDFEmbedder
	matcher  *semantic.Matcher
}

// NewNormalizer creates a normalizer with an empty catalog. The storage may
// be nil for purely in-memory use; when present, learned mappings and added
// products are written through it.
func NewNormalizer(cfg Config, storage service.Storage) *Normalizer {
	if cfg.Translator == nil {
		cfg.Translator = translate.New()
	}
	if cfg.SuggestionLimit <= 0 {
		cfg.SuggestionLimit = 3
	}
	return &Normalizer{
		cfg:      cfg,
		storage:  storage,
		byID:     make(map[string]int),
		index:    make(map[string]string),
		mappings: make(map[string]string),
	}
}

// Load pulls the full catalog and learned-mapping table from storage and
// rebuilds the in-memory index.
func (n *Normalizer) Load(ctx context.Context) error {
	if n.storage == nil {
		return fmt.Errorf("%w: normalizer has no storage attached", common.ErrMissingConfig)
	}

	products, err := n.storage.GetAllProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	mappings, err := n.storage.GetAllMappings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load learned mappings: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.products = products
	n.rebuildLocked()

	n.mappings = make(map[string]string, len(mappings))
	for _, m := range mappings {
		n.mappings[mappingKey(m.RawText, m.ShopID)] = m.ProductID
	}

	return nil
}

// LoadProducts replaces the catalog with the given products. Used for
// seeding and tests; storage is not consulted.
func (n *Normalizer) LoadProducts(products []model.CanonicalProduct) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.products = append([]model.CanonicalProduct(nil), products...)
	n.rebuildLocked()
}

// rebuildLocked reconstructs the alias index and refits the semantic
// embedder. Aliases are pivoted to French before fitting so English and
// French catalog text meet in one vector space. Caller holds the write lock.
func (n *Normalizer) rebuildLocked() {
	n.byID = make(map[string]int, len(n.products))
	n.index = make(map[string]string)
	n.entries = n.entries[:0]

	corpus := make([]string, 0, len(n.products)*2)
	for i := range n.products {
		p := &n.products[i]
		n.byID[p.ProductID] = i
		for _, alias := range p.Aliases() {
			cleaned := CleanText(alias)
			if cleaned == "" {
				continue
			}
			if _, taken := n.index[cleaned]; !taken {
				n.index[cleaned] = p.ProductID
				pivot := n.pivotText(cleaned)
				n.entries = append(n.entries, indexEntry{alias: cleaned, pivot: pivot, productID: p.ProductID})
				corpus = append(corpus, pivot)
			}
		}
	}

	n.embedder = semantic.NewTFIDFEmbedder("french")
	n.embedder.Fit(corpus)
	n.matcher = semantic.NewMatcher(n.embedder)
}

// Normalize resolves rawText to a canonical product. shopID may be empty;
// when present, shop-scoped learned mappings take precedence over global
// ones. Absence of a match is a valid terminal outcome, not an error.
func (n *Normalizer) Normalize(rawText, shopID string) (result model.NormalizationResult) {
	cleaned := CleanText(rawText)

	result = model.NormalizationResult{
		NormalizedName: cleaned,
		Method:         model.MatchNone,
	}
	if cleaned == "" {
		result.NeedsReview = true
		return result
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	defer func() {
		result.Suggestions = n.suggestLocked(cleaned, n.cfg.SuggestionLimit)
		result.NeedsReview = result.ProductID == "" || result.Confidence < n.cfg.AcceptThreshold
	}()

	// Stage 2: learned mappings, shop-scoped first.
	if shopID != "" {
		if id, ok := n.mappings[mappingKey(cleaned, shopID)]; ok {
			n.fillLocked(&result, id, model.MatchLearned, confidenceLearned)
			n.recordMappingUse(cleaned, shopID)
			return result
		}
	}
	if id, ok := n.mappings[mappingKey(cleaned, "")]; ok {
		n.fillLocked(&result, id, model.MatchLearned, confidenceLearned)
		n.recordMappingUse(cleaned, "")
		return result
	}

	// Stage 3: exact catalog lookup.
	if id, ok := n.index[cleaned]; ok {
		n.fillLocked(&result, id, model.MatchExact, confidenceExact)
		return result
	}

	// Stage 4: abbreviation expansion, then exact lookup again.
	expanded := CleanText(ExpandAbbreviations(cleaned))
	if expanded != cleaned {
		if id, ok := n.index[expanded]; ok {
			n.fillLocked(&result, id, model.MatchAbbreviation, confidenceAbbreviation)
			result.NormalizedName = expanded
			return result
		}
	}

	// Stage 5: cross-language pivot on the expanded form.
	for _, variant := range n.translationCandidates(expanded) {
		if id, ok := n.index[variant]; ok {
			n.fillLocked(&result, id, model.MatchTranslation, confidenceTranslation)
			result.NormalizedName = variant
			return result
		}
	}

	// Stage 6: fuzzy similarity over every indexed alias.
	bestScore := 0.0
	bestID := ""
	bestAlias := ""
	for _, e := range n.entries {
		score := similarity.Combined(cleaned, e.alias, n.cfg.Weights)
		if score > bestScore {
			bestScore = score
			bestID = e.productID
			bestAlias = e.alias
		}
	}
	if bestID != "" && bestScore >= n.cfg.FuzzyFloor {
		n.fillLocked(&result, bestID, model.MatchFuzzy, bestScore)
		result.NormalizedName = bestAlias
		return result
	}

	// Stage 7: semantic fallback. Query and candidates are compared in the
	// pivot language the embedder was fitted on.
	if n.matcher != nil && len(n.entries) > 0 {
		candidates := make([]string, len(n.entries))
		for i, e := range n.entries {
			candidates[i] = e.pivot
		}
		ranked := n.matcher.Rank(n.pivotText(cleaned), candidates, 1)
		if len(ranked) > 0 {
			top := ranked[0]
			if top.Score > bestScore {
				bestScore = top.Score
			}
			if top.Score > 0 && top.Score >= n.cfg.SemanticFloor {
				for _, e := range n.entries {
					if e.pivot != top.Candidate {
						continue
					}
					n.fillLocked(&result, e.productID, model.MatchSemantic, top.Score)
					result.NormalizedName = e.alias
					return result
				}
			}
		}
	}

	// Stage 8: no stage accepted; report the best score seen.
	result.Confidence = bestScore
	return result
}

// fillLocked populates the product-derived fields of a result. Caller holds
// at least the read lock.
func (n *Normalizer) fillLocked(result *model.NormalizationResult, productID string, method model.MatchMethod, confidence float64) {
	result.ProductID = productID
	result.Method = method
	result.Confidence = confidence
	if idx, ok := n.byID[productID]; ok {
		result.NormalizedName = n.products[idx].NormalizedName
		result.Category = n.products[idx].Category
	}
}

// translationCandidates returns the cleaned language variants of text other
// than text itself.
func (n *Normalizer) translationCandidates(text string) []string {
	variants := n.cfg.Translator.Variants(text)

	out := make([]string, 0, len(variants))
	for _, v := range variants {
		cleaned := CleanText(v)
		if cleaned != "" && cleaned != text {
			out = append(out, cleaned)
		}
	}
	return out
}

// pivotText renders text in the semantic pivot language, falling back to the
// input when the pivot cleans to nothing.
func (n *Normalizer) pivotText(text string) string {
	pivot := CleanText(n.cfg.Translator.ToPivot(text, translate.LangFrench))
	if pivot == "" {
		return text
	}
	return pivot
}

// recordMappingUse bumps the persisted use counter of a learned mapping.
// Failures are logged, not returned; a resolved item is never failed over a
// bookkeeping write.
func (n *Normalizer) recordMappingUse(rawText, shopID string) {
	if n.storage == nil {
		return
	}
	if err := n.storage.IncrementMappingUseCount(context.Background(), rawText, shopID); err != nil {
		slog.Warn("failed to record mapping use",
			"raw_text", rawText,
			"shop_id", shopID,
			"error", err)
	}
}

// NormalizeBatch resolves each input in order. One item's outcome never
// affects its siblings.
func (n *Normalizer) NormalizeBatch(items []model.BatchItem, shopID string) []model.BatchResult {
	results := make([]model.BatchResult, len(items))
	for i, item := range items {
		results[i] = model.BatchResult{
			Input:         item,
			Normalization: n.Normalize(item.Name, shopID),
		}
	}
	return results
}

// LearnMapping records a raw-text shortcut to productID. The raw text is
// cleaned first; re-learning the same pair overwrites. When storage is
// attached the mapping is persisted before the in-memory table is updated,
// so a store failure surfaces instead of drifting.
func (n *Normalizer) LearnMapping(ctx context.Context, rawText, productID, shopID string) error {
	cleaned := CleanText(rawText)
	if cleaned == "" {
		return fmt.Errorf("%w: raw text is empty after cleaning", common.ErrEmptyInput)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.byID[productID]; !ok {
		return fmt.Errorf("product %q: %w", productID, common.ErrNotFound)
	}

	if n.storage != nil {
		mapping := &model.LearnedMapping{
			RawText:   cleaned,
			ProductID: productID,
			ShopID:    shopID,
			Source:    model.MappingSourceManual,
		}
		if err := n.storage.SaveMapping(ctx, mapping); err != nil {
			return fmt.Errorf("%w: saving mapping: %v", common.ErrPersistence, err)
		}
	}

	n.mappings[mappingKey(cleaned, shopID)] = productID
	return nil
}

// AddProduct creates a new canonical product and indexes it immediately.
func (n *Normalizer) AddProduct(ctx context.Context, name, category, unit string, aliasesFR, aliasesEN []string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: product name is required", common.ErrEmptyInput)
	}

	product := model.CanonicalProduct{
		ProductID:      "PROD_" + strings.ToUpper(uuid.NewString()[:8]),
		NormalizedName: strings.ToLower(strings.TrimSpace(name)),
		Category:       category,
		UnitOfMeasure:  unit,
		AliasesFR:      aliasesFR,
		AliasesEN:      aliasesEN,
	}

	if n.storage != nil {
		if err := n.storage.SaveProduct(ctx, &product); err != nil {
			return "", fmt.Errorf("%w: saving product: %v", common.ErrPersistence, err)
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.products = append(n.products, product)
	n.rebuildLocked()

	return product.ProductID, nil
}

// ProductByID returns a copy of the catalog entry, if present.
func (n *Normalizer) ProductByID(productID string) (model.CanonicalProduct, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	idx, ok := n.byID[productID]
	if !ok {
		return model.CanonicalProduct{}, false
	}
	return n.products[idx], true
}

// ProductCount returns the catalog size.
func (n *Normalizer) ProductCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.products)
}

// SearchResult pairs a catalog product with its query score.
type SearchResult struct {
	Product model.CanonicalProduct
	Score   float64
}

// Search ranks the entire catalog against query by combined similarity,
// descending, ties broken by catalog insertion order, truncated to limit.
func (n *Normalizer) Search(query string, limit int) []SearchResult {
	cleaned := CleanText(query)
	if cleaned == "" {
		return nil
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	results := make([]SearchResult, 0, len(n.products))
	for i := range n.products {
		results = append(results, SearchResult{
			Product: n.products[i],
			Score:   n.bestAliasScoreLocked(cleaned, &n.products[i]),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// suggestLocked computes the top-k ranked candidates for review UIs,
// independent of whichever stage accepted. Caller holds at least the read
// lock.
func (n *Normalizer) suggestLocked(cleaned string, k int) []model.Suggestion {
	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(n.products))
	for i := range n.products {
		ranked = append(ranked, scored{idx: i, score: n.bestAliasScoreLocked(cleaned, &n.products[i])})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	out := make([]model.Suggestion, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, model.Suggestion{
			ProductID:      n.products[r.idx].ProductID,
			NormalizedName: n.products[r.idx].NormalizedName,
			Score:          r.score,
		})
	}
	return out
}

func (n *Normalizer) bestAliasScoreLocked(cleaned string, p *model.CanonicalProduct) float64 {
	best := 0.0
	for _, alias := range p.Aliases() {
		aliasCleaned := CleanText(alias)
		if aliasCleaned == "" {
			continue
		}
		if score := similarity.Combined(cleaned, aliasCleaned, n.cfg.Weights); score > best {
			best = score
		}
	}
	return best
}

func mappingKey(rawText, shopID string) string {
	return shopID + "\x00" + rawText
}
