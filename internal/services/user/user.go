// Package user содержит бизнес-логику работы с пользователями:
// регистрацию, чтение профиля и подключение кошелька.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rentchain/rentchain/internal/lib/password"
	"github.com/rentchain/rentchain/internal/models"
	"github.com/rentchain/rentchain/internal/storage/repository"
)

// Аватар и биография, которые получает автоматически созданный
// пользователь кошелька.
const (
	defaultProfileImage = "https://images.unsplash.com/photo-1633332755192-727a05c4013d?ixlib=rb-4.0.3&auto=format&fit=crop&w=50&h=50"
	defaultBio          = "Blockchain user"
)

// Repository определяет методы хранилища, нужные сервису пользователей.
type Repository interface {
	// CreateUser сохраняет нового пользователя и возвращает его с ID.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int) (*models.User, error)
	// GetUserByWalletAddress возвращает пользователя по адресу кошелька.
	GetUserByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error)
}

// Service реализует бизнес-логику работы с пользователями.
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

// Register создает нового пользователя с bcrypt-хэшем пароля.
func (s *Service) Register(ctx context.Context, req models.DummyUser) (*models.User, error) {
	passwordHash, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateUser(ctx, models.User{
		Username:      req.Username,
		PasswordHash:  passwordHash,
		Email:         req.Email,
		WalletAddress: req.WalletAddress,
		ProfileImage:  req.ProfileImage,
		Bio:           req.Bio,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("registered new user", slog.Int("id", created.ID))
	return created, nil
}

// Get возвращает пользователя по ID.
func (s *Service) Get(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

// ConnectWallet возвращает пользователя с указанным адресом кошелька.
// Для неизвестного адреса создается новый пользователь с синтетическими
// username и email и случайным паролем.
func (s *Service) ConnectWallet(ctx context.Context, walletAddress string) (*models.WalletResult, error) {
	existing, err := s.repo.GetUserByWalletAddress(ctx, walletAddress)
	if err == nil {
		return &models.WalletResult{User: existing}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := password.GetHash(uuid.New().String())
	if err != nil {
		return nil, err
	}

	prefix := walletAddress
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	profileImage := defaultProfileImage
	bio := defaultBio
	created, err := s.repo.CreateUser(ctx, models.User{
		Username:      fmt.Sprintf("user_%s", prefix),
		PasswordHash:  passwordHash,
		Email:         fmt.Sprintf("wallet_%s@example.com", prefix),
		WalletAddress: &walletAddress,
		ProfileImage:  &profileImage,
		Bio:           &bio,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("created user for wallet", slog.Int("id", created.ID))
	return &models.WalletResult{User: created, IsNewUser: true}, nil
}
