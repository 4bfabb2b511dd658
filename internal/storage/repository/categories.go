package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rentchain/rentchain/internal/models"
)

// ListCategories возвращает все категории в порядке их идентификаторов.
func (s *Storage) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "storage.ListCategories"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, image_url, slug, listing_count
			  FROM categories
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Category
	for rows.Next() {
		var item models.Category
		if err := rows.Scan(&item.ID, &item.Name, &item.Description,
			&item.ImageURL, &item.Slug, &item.ListingCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCategoryBySlug возвращает категорию по её слагу.
func (s *Storage) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	const op = "storage.GetCategoryBySlug"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, image_url, slug, listing_count
			  FROM categories
			  WHERE slug = $1`
	var item models.Category
	row := s.DB.QueryRowContext(ctx, query, slug)
	if err := row.Scan(&item.ID, &item.Name, &item.Description,
		&item.ImageURL, &item.Slug, &item.ListingCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}
