// Package contract содержит бизнес-логику мок-контрактов эскроу:
// создание, чтение по сделке аренды и симуляцию деплоя.
package contract

import (
	"context"
	"log/slog"

	"github.com/rentchain/rentchain/internal/lib/ethaddr"
	"github.com/rentchain/rentchain/internal/models"
)

// Repository определяет методы хранилища, нужные сервису контрактов.
type Repository interface {
	CreateContract(ctx context.Context, contract models.SmartContract) (*models.SmartContract, error)
	GetContractByRental(ctx context.Context, rentalID int) (*models.SmartContract, error)
	DeployContract(ctx context.Context, id int, deploymentHash string) (*models.SmartContract, error)
}

// Service реализует бизнес-логику мок-контрактов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create создает мок-контракт для сделки аренды.
func (s *Service) Create(ctx context.Context, req models.DummyContract) (*models.SmartContract, error) {
	created, err := s.repo.CreateContract(ctx, models.SmartContract{
		ContractAddress: req.ContractAddress,
		RentalID:        req.RentalID,
		DepositAmount:   req.DepositAmount,
		RentalAmount:    req.RentalAmount,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("created smart contract",
		slog.Int("id", created.ID), slog.Int("rental_id", created.RentalID))
	return created, nil
}

// ReadByRental возвращает контракт по ID сделки аренды.
func (s *Service) ReadByRental(ctx context.Context, rentalID int) (*models.SmartContract, error) {
	return s.repo.GetContractByRental(ctx, rentalID)
}

// Deploy симулирует деплой контракта: генерирует псевдослучайный хэш
// транзакции и переводит связанную сделку в статус active.
func (s *Service) Deploy(ctx context.Context, id int) (*models.SmartContract, error) {
	deploymentHash := ethaddr.NewTxHash()

	deployed, err := s.repo.DeployContract(ctx, id, deploymentHash)
	if err != nil {
		return nil, err
	}

	s.log.Info("deployed smart contract",
		slog.Int("id", deployed.ID), slog.String("hash", deploymentHash))
	return deployed, nil
}
