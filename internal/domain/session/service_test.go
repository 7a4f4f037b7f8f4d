package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockRepository) Validate(ctx context.Context, tokenHash string) (int, error) {
	args := m.Called(ctx, tokenHash)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Revoke(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	mockRepo.On("Create", mock.Anything, 123, mock.MatchedBy(func(hash string) bool {
		return len(hash) == 64
	}), now.Add(24*time.Hour)).Return(nil)

	token, err := service.Create(context.Background(), 123)
	require.NoError(t, err)
	// base64 от 32 байт с паддингом
	assert.Len(t, token, 44)

	mockRepo.AssertExpectations(t)
}

func TestService_Create_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Create", mock.Anything, 123, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(errors.New("database error"))

	_, err := service.Create(context.Background(), 123)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
}

func TestService_CreateAndValidate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	var stored string
	mockRepo.On("Create", mock.Anything, 123, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { stored = args.String(2) }).
		Return(nil)

	token, err := service.Create(context.Background(), 123)
	require.NoError(t, err)
	assert.NotEqual(t, token, stored, "the raw token is never persisted")

	mockRepo.On("Validate", mock.Anything, stored).Return(123, nil)

	userID, err := service.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 123, userID)
}

func TestService_Validate_InvalidToken(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Validate", mock.Anything, mock.AnythingOfType("string")).Return(0, ErrInvalidSession)

	_, err := service.Validate(context.Background(), "invalid_token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestService_Validate_EmptyToken(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	_, err := service.Validate(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidSession)
	mockRepo.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
}

func TestService_Revoke(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Revoke", mock.Anything, hashToken("tok")).Return(nil)

	assert.NoError(t, service.Revoke(context.Background(), "tok"))
	mockRepo.AssertExpectations(t)
}
