// Package models содержит доменные структуры маркетплейса аренды:
// пользователей, категории, объекты аренды, сделки и мок-контракты,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Пароль хранится только в виде bcrypt-хэша и никогда не сериализуется в ответ.
type User struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`      // Имя пользователя (уникальное)
	PasswordHash  string    `json:"-"`             // Хэш пароля, в ответы не попадает
	Email         string    `json:"email"`         // Электронная почта (уникальная)
	WalletAddress *string   `json:"walletAddress"` // Адрес кошелька, может отсутствовать
	ProfileImage  *string   `json:"profileImage"`
	Bio           *string   `json:"bio"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DummyUser используется для приёма данных регистрации из JSON-запроса,
// прежде чем конвертировать их в User.
type DummyUser struct {
	Username      string  `json:"username" validate:"required,alphanum"`
	Password      string  `json:"password" validate:"required,min=6"`
	Email         string  `json:"email" validate:"required,email"`
	WalletAddress *string `json:"walletAddress" validate:"omitempty,eth_addr"`
	ProfileImage  *string `json:"profileImage"`
	Bio           *string `json:"bio"`
}

// DummyWallet используется для приёма адреса кошелька при подключении.
type DummyWallet struct {
	WalletAddress string `json:"walletAddress" validate:"required,eth_addr"`
}

// WalletResult результат подключения кошелька: найденный или созданный
// пользователь и признак того, что пользователь был создан только что.
type WalletResult struct {
	User      *User `json:"user"`
	IsNewUser bool  `json:"isNewUser,omitempty"`
}
