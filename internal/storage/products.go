package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kandyfoma/goshopper/internal/common"
	"github.com/kandyfoma/goshopper/internal/model"
)

// SaveProduct inserts or updates a canonical product.
func (s *SQLiteStorage) SaveProduct(ctx context.Context, product *model.CanonicalProduct) error {
	if product == nil || product.ProductID == "" {
		return fmt.Errorf("%w: product ID is required", common.ErrInvalidConfig)
	}

	aliasesFR, err := json.Marshal(product.AliasesFR)
	if err != nil {
		return fmt.Errorf("encoding french aliases: %w", err)
	}
	aliasesEN, err := json.Marshal(product.AliasesEN)
	if err != nil {
		return fmt.Errorf("encoding english aliases: %w", err)
	}

	createdAt := product.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (product_id, normalized_name, category, unit_of_measure, aliases_fr, aliases_en, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(product_id) DO UPDATE SET
			normalized_name = excluded.normalized_name,
			category        = excluded.category,
			unit_of_measure = excluded.unit_of_measure,
			aliases_fr      = excluded.aliases_fr,
			aliases_en      = excluded.aliases_en`,
		product.ProductID, product.NormalizedName, product.Category,
		product.UnitOfMeasure, string(aliasesFR), string(aliasesEN), createdAt)
	if err != nil {
		return fmt.Errorf("%w: saving product %s: %v", common.ErrPersistence, product.ProductID, err)
	}
	return nil
}

// GetProduct returns the product with the given ID, or ErrNotFound.
func (s *SQLiteStorage) GetProduct(ctx context.Context, productID string) (*model.CanonicalProduct, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT product_id, normalized_name, category, unit_of_measure, aliases_fr, aliases_en, created_at
		FROM products WHERE product_id = ?`, productID)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: product %s", common.ErrNotFound, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading product %s: %w", productID, err)
	}
	return product, nil
}

// GetAllProducts returns the full catalog ordered by product ID.
func (s *SQLiteStorage) GetAllProducts(ctx context.Context) ([]model.CanonicalProduct, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, normalized_name, category, unit_of_measure, aliases_fr, aliases_en, created_at
		FROM products ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	defer rows.Close()

	var products []model.CanonicalProduct
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

// SeedProducts inserts products that do not exist yet. Existing rows are left
// untouched so local edits survive re-seeding.
func (s *SQLiteStorage) SeedProducts(ctx context.Context, products []model.CanonicalProduct) (int, error) {
	seeded := 0
	for i := range products {
		p := &products[i]

		var exists int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM products WHERE product_id = ?`, p.ProductID).Scan(&exists)
		if err != nil {
			return seeded, fmt.Errorf("checking product %s: %w", p.ProductID, err)
		}
		if exists > 0 {
			continue
		}

		if err := s.SaveProduct(ctx, p); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*model.CanonicalProduct, error) {
	var (
		p                    model.CanonicalProduct
		aliasesFR, aliasesEN string
	)
	err := row.Scan(&p.ProductID, &p.NormalizedName, &p.Category,
		&p.UnitOfMeasure, &aliasesFR, &aliasesEN, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(aliasesFR), &p.AliasesFR); err != nil {
		return nil, fmt.Errorf("decoding french aliases: %w", err)
	}
	if err := json.Unmarshal([]byte(aliasesEN), &p.AliasesEN); err != nil {
		return nil, fmt.Errorf("decoding english aliases: %w", err)
	}
	return &p, nil
}
