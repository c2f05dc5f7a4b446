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

// SaveTemplate inserts or replaces a shop template. Re-synthesis overwrites
// the previous version wholesale.
func (s *SQLiteStorage) SaveTemplate(ctx context.Context, template *model.ShopTemplate) error {
	if template == nil || template.ShopID == "" {
		return fmt.Errorf("%w: shop ID is required", common.ErrInvalidConfig)
	}

	updatedAt := template.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shop_templates (shop_id, item_pattern, total_pattern, subtotal_pattern,
			tax_pattern, date_pattern, currency, source, confidence_threshold, sample_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(shop_id) DO UPDATE SET
			item_pattern         = excluded.item_pattern,
			total_pattern        = excluded.total_pattern,
			subtotal_pattern     = excluded.subtotal_pattern,
			tax_pattern          = excluded.tax_pattern,
			date_pattern         = excluded.date_pattern,
			currency             = excluded.currency,
			source               = excluded.source,
			confidence_threshold = excluded.confidence_threshold,
			sample_count         = excluded.sample_count,
			updated_at           = excluded.updated_at`,
		template.ShopID, template.ItemPattern, template.TotalPattern,
		template.SubtotalPattern, template.TaxPattern, template.DatePattern,
		template.Currency, string(template.Source), template.ConfidenceThreshold,
		template.SampleCount, updatedAt)
	if err != nil {
		return fmt.Errorf("%w: saving template for %s: %v", common.ErrPersistence, template.ShopID, err)
	}
	return nil
}

// GetTemplate returns the template for a shop, or ErrNotFound.
func (s *SQLiteStorage) GetTemplate(ctx context.Context, shopID string) (*model.ShopTemplate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT shop_id, item_pattern, total_pattern, subtotal_pattern, tax_pattern,
			date_pattern, currency, source, confidence_threshold, sample_count, updated_at
		FROM shop_templates WHERE shop_id = ?`, shopID)

	template, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: template for %s", common.ErrNotFound, shopID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading template for %s: %w", shopID, err)
	}
	return template, nil
}

// GetAllTemplates returns every stored template ordered by shop ID.
func (s *SQLiteStorage) GetAllTemplates(ctx context.Context) ([]model.ShopTemplate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT shop_id, item_pattern, total_pattern, subtotal_pattern, tax_pattern,
			date_pattern, currency, source, confidence_threshold, sample_count, updated_at
		FROM shop_templates ORDER BY shop_id`)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	defer rows.Close()

	var templates []model.ShopTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		templates = append(templates, *template)
	}
	return templates, rows.Err()
}

func scanTemplate(row rowScanner) (*model.ShopTemplate, error) {
	var (
		t      model.ShopTemplate
		source string
	)
	err := row.Scan(&t.ShopID, &t.ItemPattern, &t.TotalPattern, &t.SubtotalPattern,
		&t.TaxPattern, &t.DatePattern, &t.Currency, &source,
		&t.ConfidenceThreshold, &t.SampleCount, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Source = model.TemplateSource(source)
	return &t, nil
}
