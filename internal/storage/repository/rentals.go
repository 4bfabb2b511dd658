package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rentchain/rentchain/internal/models"
)

const rentalColumns = `id, property_id, renter_id, start_date, end_date, total_price,
			      security_deposit, transaction_hash, status, contract_address,
			      smart_contract_id, created_at`

// CreateRental создаёт сделку аренды в одной транзакции с проверкой
// доступности объекта. Строка объекта блокируется FOR UPDATE, поэтому две
// конкурентные аренды одного объекта не могут пройти одновременно:
// вторая увидит is_available = false и получит ErrPropertyUnavailable.
func (s *Storage) CreateRental(ctx context.Context, rental models.Rental) (*models.Rental, error) {
	const op = "storage.CreateRental"
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

	created, err := createRentalTx(ctx, tx, rental)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// createRentalTx выполняет шаги создания аренды внутри уже открытой
// транзакции. Используется и одиночным эндпоинтом, и серверным бронированием.
func createRentalTx(ctx context.Context, tx *sql.Tx, rental models.Rental) (*models.Rental, error) {
	var isAvailable bool
	err := tx.QueryRowContext(ctx,
		`SELECT is_available FROM properties WHERE id = $1 FOR UPDATE`,
		rental.PropertyID).Scan(&isAvailable)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !isAvailable {
		return nil, ErrPropertyUnavailable
	}

	query := `INSERT INTO rentals (property_id, renter_id, start_date, end_date,
			      total_price, security_deposit, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at`
	rental.Status = models.RentalStatusPending
	if err := tx.QueryRowContext(ctx, query,
		rental.PropertyID, rental.RenterID, rental.StartDate, rental.EndDate,
		rental.TotalPrice, rental.SecurityDeposit, rental.Status).
		Scan(&rental.ID, &rental.CreatedAt); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE properties
		 SET is_available = false, rental_count = rental_count + 1
		 WHERE id = $1`,
		rental.PropertyID); err != nil {
		return nil, err
	}
	return &rental, nil
}

// GetRental возвращает сделку аренды по её ID.
func (s *Storage) GetRental(ctx context.Context, id int) (*models.Rental, error) {
	const op = "storage.GetRental"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + rentalColumns + `
			  FROM rentals
			  WHERE id = $1`
	item, err := scanRental(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// ListRentalsByRenter возвращает сделки указанного арендатора.
func (s *Storage) ListRentalsByRenter(ctx context.Context, renterID int) ([]*models.Rental, error) {
	const op = "storage.ListRentalsByRenter"
	query := `SELECT ` + rentalColumns + `
			  FROM rentals
			  WHERE renter_id = $1
			  ORDER BY id`
	return s.listRentals(ctx, op, query, renterID)
}

// ListRentalsByProperty возвращает сделки по указанному объекту.
func (s *Storage) ListRentalsByProperty(ctx context.Context, propertyID int) ([]*models.Rental, error) {
	const op = "storage.ListRentalsByProperty"
	query := `SELECT ` + rentalColumns + `
			  FROM rentals
			  WHERE property_id = $1
			  ORDER BY id`
	return s.listRentals(ctx, op, query, propertyID)
}

// UpdateRentalStatus переводит сделку в новый статус. Переход в completed
// или cancelled возвращает объекту доступность в той же транзакции.
func (s *Storage) UpdateRentalStatus(ctx context.Context, id int, status string) (*models.Rental, error) {
	const op = "storage.UpdateRentalStatus"
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

	query := `UPDATE rentals
			  SET status = $1
			  WHERE id = $2
			  RETURNING ` + rentalColumns
	item, err := scanRental(tx.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if status == models.RentalStatusCompleted || status == models.RentalStatusCancelled {
		if _, err := tx.ExecContext(ctx,
			`UPDATE properties SET is_available = true WHERE id = $1`,
			item.PropertyID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func (s *Storage) listRentals(ctx context.Context, op, query string, args ...any) ([]*models.Rental, error) {
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

	var result []*models.Rental
	for rows.Next() {
		item, err := scanRental(rows)
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

func scanRental(row rowScanner) (*models.Rental, error) {
	var item models.Rental
	if err := row.Scan(&item.ID, &item.PropertyID, &item.RenterID, &item.StartDate,
		&item.EndDate, &item.TotalPrice, &item.SecurityDeposit, &item.TransactionHash,
		&item.Status, &item.ContractAddress, &item.SmartContractID,
		&item.CreatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}
