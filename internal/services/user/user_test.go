package user

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rentchain/rentchain/internal/lib/password"
	"github.com/rentchain/rentchain/internal/models"
	"github.com/rentchain/rentchain/internal/storage/repository"
)

// MockRepository реализует интерфейс user.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetUser(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetUserByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error) {
	args := m.Called(ctx, walletAddress)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestService_Register(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		// Пароль уходит в хранилище только в виде bcrypt-хэша
		return u.PasswordHash != "secret123" &&
			password.CompareHash(u.PasswordHash, "secret123") == nil
	})).Return(&models.User{ID: 1, Username: "alice"}, nil)

	service := NewService(repo, newTestLogger())

	user, err := service.Register(context.Background(), models.DummyUser{
		Username: "alice",
		Password: "secret123",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	repo.AssertExpectations(t)
}

func TestService_ConnectWallet(t *testing.T) {
	const wallet = "0x71C98b5814FCb4500fF99E89a580F250F31bc8F3"

	t.Run("существующий кошелек возвращает пользователя", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUserByWalletAddress", mock.Anything, wallet).
			Return(&models.User{ID: 3, Username: "demo_user"}, nil)

		service := NewService(repo, newTestLogger())

		result, err := service.ConnectWallet(context.Background(), wallet)
		require.NoError(t, err)
		assert.Equal(t, 3, result.User.ID)
		assert.False(t, result.IsNewUser)

		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("неизвестный кошелек создает пользователя", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUserByWalletAddress", mock.Anything, wallet).
			Return(nil, repository.ErrNotFound)
		repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.Username == "user_0x71C98b" && *u.WalletAddress == wallet
		})).Return(&models.User{ID: 9, Username: "user_0x71C98b"}, nil)

		service := NewService(repo, newTestLogger())

		result, err := service.ConnectWallet(context.Background(), wallet)
		require.NoError(t, err)
		assert.Equal(t, 9, result.User.ID)
		assert.True(t, result.IsNewUser)

		repo.AssertExpectations(t)
	})

	t.Run("ошибка хранилища пробрасывается", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUserByWalletAddress", mock.Anything, wallet).
			Return(nil, errors.New("db error"))

		service := NewService(repo, newTestLogger())

		result, err := service.ConnectWallet(context.Background(), wallet)
		require.Error(t, err)
		assert.Nil(t, result)
	})
}
