package models

import "time"

// Property представляет объект аренды: автомобиль, дрон, недвижимость
// или оборудование. Цена и депозит указываются в ETH за сутки.
type Property struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"imageUrl"`
	Price           float64   `json:"price"`           // Цена аренды за сутки
	SecurityDeposit float64   `json:"securityDeposit"` // Страховой депозит
	Location        string    `json:"location"`
	OwnerID         int       `json:"ownerId"`    // Владелец объекта
	CategoryID      int       `json:"categoryId"` // Категория объекта
	Rating          float64   `json:"rating"`
	RentalCount     int       `json:"rentalCount"` // Сколько раз объект арендовали
	Features        []string  `json:"features"`
	IsAvailable     bool      `json:"isAvailable"` // false, пока есть активная или ожидающая аренда
	CreatedAt       time.Time `json:"createdAt"`
}

// DummyProperty используется для приёма данных нового объекта из JSON-запроса.
type DummyProperty struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	ImageURL        string   `json:"imageUrl" validate:"required,url"`
	Price           float64  `json:"price" validate:"required,gt=0"`
	SecurityDeposit float64  `json:"securityDeposit" validate:"required,gt=0"`
	Location        string   `json:"location" validate:"required"`
	OwnerID         int      `json:"ownerId" validate:"required,gt=0"`
	CategoryID      int      `json:"categoryId" validate:"required,gt=0"`
	Features        []string `json:"features"`
}

// DummyPropertyUpdate описывает частичное обновление объекта.
// Нулевые указатели означают «поле не менять».
type DummyPropertyUpdate struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	ImageURL        *string  `json:"imageUrl" validate:"omitempty,url"`
	Price           *float64 `json:"price" validate:"omitempty,gt=0"`
	SecurityDeposit *float64 `json:"securityDeposit" validate:"omitempty,gt=0"`
	Location        *string  `json:"location"`
	Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Features        []string `json:"features"`
	IsAvailable     *bool    `json:"isAvailable"`
}
