package user

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"organizer/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, c user.Credentials) (int, error) {
	args := m.Called(ctx, c)
	return args.Int(0), args.Error(1)
}

func (m *MockService) Authenticate(ctx context.Context, c user.Credentials) (user.User, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockService) Verify(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockService) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Create(ctx context.Context, userID int) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessions) Validate(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

func (m *MockSessions) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

var creds = user.Credentials{Email: "amina@example.com", Password: "salaam2026"}

func TestHandler_Register(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockSessions), slog.Default(), nil)

	svc.On("Register", mock.Anything, creds).Return(7, nil).Once()
	svc.On("Register", mock.Anything, creds).Return(0, user.ErrAlreadyExists).Once()

	out, err := h.register(context.Background(), &credentialsInput{Body: creds})
	require.NoError(t, err)
	assert.Equal(t, 7, out.Body.ID)

	_, err = h.register(context.Background(), &credentialsInput{Body: creds})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestHandler_Login(t *testing.T) {
	svc := new(MockService)
	sessions := new(MockSessions)
	h := NewHandler(svc, sessions, slog.Default(), nil)

	svc.On("Authenticate", mock.Anything, creds).Return(user.User{ID: 7}, nil)
	sessions.On("Create", mock.Anything, 7).Return("token-abc", nil)

	out, err := h.login(context.Background(), &credentialsInput{Body: creds})
	require.NoError(t, err)
	assert.Equal(t, "token-abc", out.Body.Token)
	assert.Equal(t, "Ok", out.Body.Status)
}

func TestHandler_Login_InvalidCredentials(t *testing.T) {
	svc := new(MockService)
	sessions := new(MockSessions)
	h := NewHandler(svc, sessions, slog.Default(), nil)

	svc.On("Authenticate", mock.Anything, creds).Return(user.User{}, user.ErrInvalidAuth)

	_, err := h.login(context.Background(), &credentialsInput{Body: creds})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandler_Verify(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockSessions), slog.Default(), nil)

	svc.On("Verify", mock.Anything, "good").Return(nil)
	svc.On("Verify", mock.Anything, "used").Return(user.ErrTokenInvalid)

	input := &verifyInput{}
	input.Body.Token = "good"
	_, err := h.verify(context.Background(), input)
	require.NoError(t, err)

	input.Body.Token = "used"
	_, err = h.verify(context.Background(), input)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestHandler_ResetRequest_AlwaysOk(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockSessions), slog.Default(), nil)

	svc.On("RequestPasswordReset", mock.Anything, "amina@example.com").Return(errors.New("redis down"))

	input := &resetRequestInput{}
	input.Body.Email = "amina@example.com"

	out, err := h.resetRequest(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Ok", out.Body.Status)
}

func TestHandler_ResetConfirm(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockSessions), slog.Default(), nil)

	svc.On("ResetPassword", mock.Anything, "t1", "newpass123").Return(nil)
	svc.On("ResetPassword", mock.Anything, "t1", "weakpassword").Return(user.ErrInvalidInput)

	input := &resetConfirmInput{}
	input.Body.Token = "t1"
	input.Body.Password = "newpass123"
	_, err := h.resetConfirm(context.Background(), input)
	require.NoError(t, err)

	input.Body.Password = "weakpassword"
	_, err = h.resetConfirm(context.Background(), input)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
}
