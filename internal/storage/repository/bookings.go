package repository

import (
	"context"
	"fmt"

	"github.com/rentchain/rentchain/internal/models"
)

// CreateBooking выполняет полный цикл эскроу одной транзакцией:
// создание аренды, создание мок-контракта и его деплой. Любая ошибка
// откатывает все три шага, поэтому частичного состояния
// («объект занят, контракта нет») в базе остаться не может.
func (s *Storage) CreateBooking(ctx context.Context, rental models.Rental,
	contractAddress, deploymentHash string) (*models.BookingResult, error) {
	const op = "storage.CreateBooking"
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

	createdRental, err := createRentalTx(ctx, tx, rental)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	contract, err := createContractTx(ctx, tx, models.SmartContract{
		ContractAddress: contractAddress,
		RentalID:        createdRental.ID,
		DepositAmount:   createdRental.SecurityDeposit,
		RentalAmount:    createdRental.TotalPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	deployed, err := deployContractTx(ctx, tx, contract.ID, deploymentHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Итоговое состояние аренды после всех шагов транзакции.
	final, err := s.GetRental(ctx, createdRental.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.BookingResult{
		Rental:   final,
		Contract: deployed,
	}, nil
}
