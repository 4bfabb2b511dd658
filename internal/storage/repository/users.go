package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rentchain/rentchain/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его с заполненным ID.
// Нарушение уникальности username или email возвращается как ErrDuplicateUser.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (username, password_hash, email, wallet_address,
			      profile_image, bio)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.Email, user.WalletAddress,
		user.ProfileImage, user.Bio).Scan(&user.ID, &user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateUser)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password_hash, email, wallet_address,
			      profile_image, bio, created_at
			  FROM users
			  WHERE id = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, id), op)
}

// GetUserByWalletAddress возвращает пользователя по адресу кошелька.
func (s *Storage) GetUserByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error) {
	const op = "storage.GetUserByWalletAddress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password_hash, email, wallet_address,
			      profile_image, bio, created_at
			  FROM users
			  WHERE wallet_address = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, walletAddress), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email,
		&u.WalletAddress, &u.ProfileImage, &u.Bio, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
