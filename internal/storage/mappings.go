package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kandyfoma/goshopper/internal/common"
	"github.com/kandyfoma/goshopper/internal/model"
)

// SaveMapping inserts or replaces a learned raw-text mapping. The (raw_text,
// shop_id) pair is the key; relearning overwrites the previous target.
func (s *SQLiteStorage) SaveMapping(ctx context.Context, mapping *model.LearnedMapping) error {
	if mapping == nil || mapping.RawText == "" || mapping.ProductID == "" {
		return fmt.Errorf("%w: raw text and product ID are required", common.ErrInvalidConfig)
	}

	learnedAt := mapping.LearnedAt
	if learnedAt.IsZero() {
		learnedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO learned_mappings (raw_text, shop_id, product_id, source, use_count, learned_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(raw_text, shop_id) DO UPDATE SET
			product_id = excluded.product_id,
			source     = excluded.source,
			learned_at = excluded.learned_at`,
		mapping.RawText, mapping.ShopID, mapping.ProductID,
		string(mapping.Source), mapping.UseCount, learnedAt)
	if err != nil {
		return fmt.Errorf("%w: saving mapping %q: %v", common.ErrPersistence, mapping.RawText, err)
	}
	return nil
}

// GetMapping returns the mapping for the cleaned raw text, preferring a
// shop-scoped entry over a global one.
func (s *SQLiteStorage) GetMapping(ctx context.Context, rawText, shopID string) (*model.LearnedMapping, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT raw_text, shop_id, product_id, source, use_count, learned_at
		FROM learned_mappings
		WHERE raw_text = ? AND shop_id IN (?, '')
		ORDER BY shop_id DESC LIMIT 1`, rawText, shopID)

	mapping, err := scanMapping(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: mapping %q", common.ErrNotFound, rawText)
	}
	if err != nil {
		return nil, fmt.Errorf("loading mapping %q: %w", rawText, err)
	}
	return mapping, nil
}

// GetAllMappings returns every learned mapping ordered by learn time.
func (s *SQLiteStorage) GetAllMappings(ctx context.Context) ([]model.LearnedMapping, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT raw_text, shop_id, product_id, source, use_count, learned_at
		FROM learned_mappings ORDER BY learned_at, raw_text`)
	if err != nil {
		return nil, fmt.Errorf("loading mappings: %w", err)
	}
	defer rows.Close()

	var mappings []model.LearnedMapping
	for rows.Next() {
		mapping, err := scanMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mapping: %w", err)
		}
		mappings = append(mappings, *mapping)
	}
	return mappings, rows.Err()
}

// IncrementMappingUseCount bumps the hit counter for a mapping. Missing
// mappings are ignored; the counter is advisory.
func (s *SQLiteStorage) IncrementMappingUseCount(ctx context.Context, rawText, shopID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE learned_mappings SET use_count = use_count + 1
		WHERE raw_text = ? AND shop_id = ?`, rawText, shopID)
	if err != nil {
		return fmt.Errorf("%w: incrementing use count for %q: %v", common.ErrPersistence, rawText, err)
	}
	return nil
}

func scanMapping(row rowScanner) (*model.LearnedMapping, error) {
	var (
		m      model.LearnedMapping
		source string
	)
	err := row.Scan(&m.RawText, &m.ShopID, &m.ProductID, &source, &m.UseCount, &m.LearnedAt)
	if err != nil {
		return nil, err
	}
	m.Source = model.MappingSource(source)
	return &m, nil
}
