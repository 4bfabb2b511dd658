package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rentchain/rentchain/internal/models"
)

const propertyColumns = `id, title, description, image_url, price, security_deposit,
			      location, owner_id, category_id, rating, rental_count, features,
			      is_available, created_at`

// CreateProperty вставляет новый объект аренды и увеличивает счётчик
// объявлений его категории в той же транзакции.
func (s *Storage) CreateProperty(ctx context.Context, property models.Property) (*models.Property, error) {
	const op = "storage.CreateProperty"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rollback(tx)

	query := `INSERT INTO properties (title, description, image_url, price,
			      security_deposit, location, owner_id, category_id, features)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, '{}'))
			  RETURNING id, rating, rental_count, is_available, created_at`
	if err := tx.QueryRowContext(ctx, query,
		property.Title, property.Description, property.ImageURL, property.Price,
		property.SecurityDeposit, property.Location, property.OwnerID,
		property.CategoryID, property.Features).Scan(&property.ID, &property.Rating,
		&property.RentalCount, &property.IsAvailable, &property.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE categories SET listing_count = listing_count + 1 WHERE id = $1`,
		property.CategoryID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &property, nil
}

// GetProperty возвращает объект аренды по его ID.
func (s *Storage) GetProperty(ctx context.Context, id int) (*models.Property, error) {
	const op = "storage.GetProperty"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + propertyColumns + `
			  FROM properties
			  WHERE id = $1`
	item, err := scanProperty(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// ListProperties возвращает все объекты аренды.
func (s *Storage) ListProperties(ctx context.Context) ([]*models.Property, error) {
	const op = "storage.ListProperties"
	query := `SELECT ` + propertyColumns + `
			  FROM properties
			  ORDER BY id`
	return s.listProperties(ctx, op, query)
}

// ListPropertiesByCategory возвращает объекты аренды указанной категории.
func (s *Storage) ListPropertiesByCategory(ctx context.Context, categoryID int) ([]*models.Property, error) {
	const op = "storage.ListPropertiesByCategory"
	query := `SELECT ` + propertyColumns + `
			  FROM properties
			  WHERE category_id = $1
			  ORDER BY id`
	return s.listProperties(ctx, op, query, categoryID)
}

// ListPropertiesByOwner возвращает объекты аренды указанного владельца.
func (s *Storage) ListPropertiesByOwner(ctx context.Context, ownerID int) ([]*models.Property, error) {
	const op = "storage.ListPropertiesByOwner"
	query := `SELECT ` + propertyColumns + `
			  FROM properties
			  WHERE owner_id = $1
			  ORDER BY id`
	return s.listProperties(ctx, op, query, ownerID)
}

// UpdateProperty выполняет частичное обновление объекта: непустые поля
// затирают старые значения, нулевые указатели сохраняют их.
func (s *Storage) UpdateProperty(ctx context.Context, id int, upd models.DummyPropertyUpdate) (*models.Property, error) {
	const op = "storage.UpdateProperty"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE properties
			  SET title = COALESCE($1, title),
			      description = COALESCE($2, description),
			      image_url = COALESCE($3, image_url),
			      price = COALESCE($4, price),
			      security_deposit = COALESCE($5, security_deposit),
			      location = COALESCE($6, location),
			      rating = COALESCE($7, rating),
			      features = COALESCE($8, features),
			      is_available = COALESCE($9, is_available)
			  WHERE id = $10
			  RETURNING ` + propertyColumns
	item, err := scanProperty(s.DB.QueryRowContext(ctx, query,
		upd.Title, upd.Description, upd.ImageURL, upd.Price, upd.SecurityDeposit,
		upd.Location, upd.Rating, upd.Features, upd.IsAvailable, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// DeleteProperty удаляет объект аренды по ID. Зависимые аренды не каскадируются.
func (s *Storage) DeleteProperty(ctx context.Context, id int) error {
	const op = "storage.DeleteProperty"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func (s *Storage) listProperties(ctx context.Context, op, query string, args ...any) ([]*models.Property, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Property
	for rows.Next() {
		item, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// rowScanner покрывает *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*models.Property, error) {
	var item models.Property
	if err := row.Scan(&item.ID, &item.Title, &item.Description, &item.ImageURL,
		&item.Price, &item.SecurityDeposit, &item.Location, &item.OwnerID,
		&item.CategoryID, &item.Rating, &item.RentalCount, textArray(&item.Features),
		&item.IsAvailable, &item.CreatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

// isForeignKeyViolation сообщает, вызвана ли ошибка нарушением внешнего ключа.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
