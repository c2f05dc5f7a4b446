package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kandyfoma/goshopper/internal/common"
	"github.com/kandyfoma/goshopper/internal/model"
)

// SaveSample appends a learning sample. Samples are never updated or deleted;
// the table is the append-only history that template synthesis reads.
func (s *SQLiteStorage) SaveSample(ctx context.Context, sample *model.LearningSample) error {
	if sample == nil || sample.ShopID == "" {
		return fmt.Errorf("%w: shop ID is required", common.ErrInvalidConfig)
	}

	if sample.ID == "" {
		sample.ID = uuid.NewString()
	}
	capturedAt := sample.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now().UTC()
	}

	correction, err := json.Marshal(sample.Correction)
	if err != nil {
		return fmt.Errorf("encoding correction: %w", err)
	}
	features, err := json.Marshal(sample.Features)
	if err != nil {
		return fmt.Errorf("encoding features: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO learning_samples (id, shop_id, raw_text, correction, local_confidence, features, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sample.ID, sample.ShopID, sample.RawText, string(correction),
		sample.LocalConfidence, string(features), capturedAt)
	if err != nil {
		return fmt.Errorf("%w: saving sample for %s: %v", common.ErrPersistence, sample.ShopID, err)
	}
	return nil
}

// GetSamplesByShop returns a shop's samples in capture order.
func (s *SQLiteStorage) GetSamplesByShop(ctx context.Context, shopID string) ([]model.LearningSample, error) {
	return s.querySamples(ctx, `
		SELECT id, shop_id, raw_text, correction, local_confidence, features, captured_at
		FROM learning_samples WHERE shop_id = ? ORDER BY captured_at, id`, shopID)
}

// CountSamplesByShop returns how many samples a shop has accumulated.
func (s *SQLiteStorage) CountSamplesByShop(ctx context.Context, shopID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM learning_samples WHERE shop_id = ?`, shopID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting samples for %s: %w", shopID, err)
	}
	return count, nil
}

// GetAllSamples returns every sample in capture order.
func (s *SQLiteStorage) GetAllSamples(ctx context.Context) ([]model.LearningSample, error) {
	return s.querySamples(ctx, `
		SELECT id, shop_id, raw_text, correction, local_confidence, features, captured_at
		FROM learning_samples ORDER BY captured_at, id`)
}

func (s *SQLiteStorage) querySamples(ctx context.Context, query string, args ...any) ([]model.LearningSample, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading samples: %w", err)
	}
	defer rows.Close()

	var samples []model.LearningSample
	for rows.Next() {
		var (
			sample               model.LearningSample
			correction, features string
		)
		err := rows.Scan(&sample.ID, &sample.ShopID, &sample.RawText,
			&correction, &sample.LocalConfidence, &features, &sample.CapturedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning sample: %w", err)
		}
		if err := json.Unmarshal([]byte(correction), &sample.Correction); err != nil {
			return nil, fmt.Errorf("decoding correction for sample %s: %w", sample.ID, err)
		}
		if err := json.Unmarshal([]byte(features), &sample.Features); err != nil {
			return nil, fmt.Errorf("decoding features for sample %s: %w", sample.ID, err)
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}
