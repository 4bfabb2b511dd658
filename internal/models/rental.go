package models

import "time"

// Статусы аренды. Переходы: pending → active → completed,
// отмена возможна из pending и active.
const (
	RentalStatusPending   = "pending"
	RentalStatusActive    = "active"
	RentalStatusCompleted = "completed"
	RentalStatusCancelled = "cancelled"
)

// ValidRentalStatus сообщает, входит ли значение в перечень статусов аренды.
func ValidRentalStatus(status string) bool {
	switch status {
	case RentalStatusPending, RentalStatusActive, RentalStatusCompleted, RentalStatusCancelled:
		return true
	}
	return false
}

// Rental представляет сделку аренды: арендатора, объект, период и сумму.
// Поля контракта заполняются после создания и деплоя мок-контракта.
type Rental struct {
	ID              int       `json:"id"`
	PropertyID      int       `json:"propertyId"`
	RenterID        int       `json:"renterId"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	TotalPrice      float64   `json:"totalPrice"`
	SecurityDeposit float64   `json:"securityDeposit"`
	TransactionHash *string   `json:"transactionHash"` // Хэш транзакции деплоя
	Status          string    `json:"status"`
	ContractAddress *string   `json:"contractAddress"`
	SmartContractID *string   `json:"smartContractId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DummyRental используется для приёма данных новой аренды из JSON-запроса.
// Даты приходят строками в формате RFC3339 и парсятся в сервисе.
type DummyRental struct {
	PropertyID      int     `json:"propertyId" validate:"required,gt=0"`
	RenterID        int     `json:"renterId" validate:"required,gt=0"`
	StartDate       string  `json:"startDate" validate:"required"`
	EndDate         string  `json:"endDate" validate:"required"`
	TotalPrice      float64 `json:"totalPrice" validate:"required,gt=0"`
	SecurityDeposit float64 `json:"securityDeposit" validate:"required,gte=0"`
}

// DummyStatus используется для приёма нового статуса аренды.
type DummyStatus struct {
	Status string `json:"status" validate:"required"`
}
