package models

import "time"

// SmartContract представляет мок-контракт эскроу для сделки аренды.
// Никакого взаимодействия с реальным блокчейном нет: адрес и хэш деплоя —
// псевдослучайные hex-строки, связь с арендой один-к-одному.
type SmartContract struct {
	ID              int       `json:"id"`
	ContractAddress string    `json:"contractAddress"`
	RentalID        int       `json:"rentalId"`
	DepositAmount   float64   `json:"depositAmount"`
	RentalAmount    float64   `json:"rentalAmount"`
	IsDeployed      bool      `json:"isDeployed"`
	DeploymentHash  *string   `json:"deploymentHash"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DummyContract используется для приёма данных нового контракта из JSON-запроса.
type DummyContract struct {
	ContractAddress string  `json:"contractAddress" validate:"required,eth_addr"`
	RentalID        int     `json:"rentalId" validate:"required,gt=0"`
	DepositAmount   float64 `json:"depositAmount" validate:"required,gte=0"`
	RentalAmount    float64 `json:"rentalAmount" validate:"required,gt=0"`
}

// DummyBooking используется для приёма данных бронирования «в один шаг»:
// аренда, контракт и деплой выполняются одной серверной транзакцией.
type DummyBooking struct {
	PropertyID     int    `json:"propertyId" validate:"required,gt=0"`
	RenterID       int    `json:"renterId" validate:"required,gt=0"`
	StartDate      string `json:"startDate" validate:"required"`
	EndDate        string `json:"endDate" validate:"required"`
	IdempotencyKey string `json:"idempotencyKey" validate:"omitempty,uuid4"`
}

// BookingResult итог серверного бронирования: созданная аренда
// и задеплоенный мок-контракт.
type BookingResult struct {
	Rental   *Rental        `json:"rental"`
	Contract *SmartContract `json:"contract"`
}
