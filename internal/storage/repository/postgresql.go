// Package repository реализует хранилище данных на основе PostgreSQL
// для маркетплейса аренды. Предоставляет методы работы с пользователями,
// категориями, объектами аренды, сделками и мок-контрактами.
//
// Инварианты предметной области, которые исходная версия поддерживала
// проверками в обработчиках, здесь закреплены структурно: уникальность
// username/email/slug и связь контракт-аренда один-к-одному обеспечиваются
// ограничениями схемы, а доступность объекта меняется только внутри
// транзакции с блокировкой строки объекта.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Обработчики транслируют их в HTTP-статусы.
var (
	// ErrNotFound запись с указанным идентификатором отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUser нарушена уникальность username или email.
	ErrDuplicateUser = errors.New("username or email already exists")
	// ErrPropertyUnavailable объект уже занят другой арендой.
	ErrPropertyUnavailable = errors.New("property is not available")
	// ErrContractExists для аренды уже существует мок-контракт.
	ErrContractExists = errors.New("smart contract already exists for this rental")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с сущностями маркетплейса.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Ping проверяет доступность соединения с базой данных.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'properties'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table properties missing or query error: %w", err)
	}
	return nil
}

var typeMap = pgtype.NewMap()

// textArray оборачивает []string в sql.Scanner для чтения колонок text[]
// через database/sql поверх драйвера pgx.
func textArray(dst *[]string) sql.Scanner {
	return typeMap.SQLScanner(dst)
}

// isUniqueViolation сообщает, вызвана ли ошибка нарушением уникального
// ограничения PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// rollback откатывает транзакцию, не затирая исходную ошибку.
func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
