package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/rentchain/rentchain/internal/models"
)

const contractColumns = `id, contract_address, rental_id, deposit_amount, rental_amount,
			      is_deployed, deployment_hash, created_at`

// CreateContract создаёт мок-контракт для сделки аренды и проставляет на
// сделке адрес и идентификатор контракта. Связь один-к-одному обеспечена
// уникальным индексом на rental_id: повторная попытка возвращает
// ErrContractExists независимо от порядка конкурентных вызовов.
func (s *Storage) CreateContract(ctx context.Context, contract models.SmartContract) (*models.SmartContract, error) {
	const op = "storage.CreateContract"
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

	created, err := createContractTx(ctx, tx, contract)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func createContractTx(ctx context.Context, tx *sql.Tx, contract models.SmartContract) (*models.SmartContract, error) {
	var rentalID int
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM rentals WHERE id = $1 FOR UPDATE`,
		contract.RentalID).Scan(&rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	query := `INSERT INTO smart_contracts (contract_address, rental_id,
			      deposit_amount, rental_amount)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, is_deployed, created_at`
	if err := tx.QueryRowContext(ctx, query,
		contract.ContractAddress, contract.RentalID, contract.DepositAmount,
		contract.RentalAmount).Scan(&contract.ID, &contract.IsDeployed,
		&contract.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrContractExists
		}
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rentals
		 SET contract_address = $1, smart_contract_id = $2, status = $3
		 WHERE id = $4`,
		contract.ContractAddress, strconv.Itoa(contract.ID),
		models.RentalStatusPending, contract.RentalID); err != nil {
		return nil, err
	}
	return &contract, nil
}

// GetContractByRental возвращает мок-контракт по ID сделки аренды.
func (s *Storage) GetContractByRental(ctx context.Context, rentalID int) (*models.SmartContract, error) {
	const op = "storage.GetContractByRental"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + contractColumns + `
			  FROM smart_contracts
			  WHERE rental_id = $1`
	item, err := scanContract(s.DB.QueryRowContext(ctx, query, rentalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// DeployContract отмечает контракт задеплоенным, записывает хэш деплоя
// и переводит связанную сделку в статус active с тем же хэшем транзакции.
func (s *Storage) DeployContract(ctx context.Context, id int, deploymentHash string) (*models.SmartContract, error) {
	const op = "storage.DeployContract"
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

	item, err := deployContractTx(ctx, tx, id, deploymentHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func deployContractTx(ctx context.Context, tx *sql.Tx, id int, deploymentHash string) (*models.SmartContract, error) {
	query := `UPDATE smart_contracts
			  SET is_deployed = true, deployment_hash = $1
			  WHERE id = $2
			  RETURNING ` + contractColumns
	item, err := scanContract(tx.QueryRowContext(ctx, query, deploymentHash, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rentals
		 SET status = $1, transaction_hash = $2
		 WHERE id = $3`,
		models.RentalStatusActive, deploymentHash, item.RentalID); err != nil {
		return nil, err
	}
	return item, nil
}

func scanContract(row rowScanner) (*models.SmartContract, error) {
	var item models.SmartContract
	if err := row.Scan(&item.ID, &item.ContractAddress, &item.RentalID,
		&item.DepositAmount, &item.RentalAmount, &item.IsDeployed,
		&item.DeploymentHash, &item.CreatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}
