package progress

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"organizer/internal/app/server/api/http/middleware/auth"
	"organizer/internal/domain/progress"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Load(ctx context.Context, userID int) (progress.Snapshot, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(progress.Snapshot), args.Error(1)
}

func (m *MockService) Award(ctx context.Context, userID int, action progress.Action, amount int) (progress.AwardResult, error) {
	args := m.Called(ctx, userID, action, amount)
	return args.Get(0).(progress.AwardResult), args.Error(1)
}

func (m *MockService) Spend(ctx context.Context, userID int, amount int) (progress.Ledger, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(progress.Ledger), args.Error(1)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func TestHandler_Load(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := auth.WithUserID(context.Background(), 7)

	snap := progress.Snapshot{
		Ledger:            progress.Ledger{UserID: 7, Coins: 10, XP: 10, Level: 1},
		Achievements:      []progress.Achievement{},
		DailyBonusGranted: true,
	}
	svc.On("Load", mock.Anything, 7).Return(snap, nil)

	out, err := h.load(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ok", out.Body.Status)
	assert.Equal(t, 10, out.Body.Ledger.Coins)
	assert.True(t, out.Body.DailyBonusGranted)
}

func TestHandler_Load_Unauthorized(t *testing.T) {
	h := NewHandler(new(MockService), slog.Default(), nil)

	_, err := h.load(context.Background(), nil)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestHandler_Award(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := auth.WithUserID(context.Background(), 7)

	res := progress.AwardResult{
		Ledger:          progress.Ledger{Coins: 25, XP: 25, Level: 1, TotalActions: 1},
		NewAchievements: []progress.Achievement{{Code: "first_step"}},
	}
	svc.On("Award", mock.Anything, 7, progress.ActionDhikr, 25).Return(res, nil)

	input := &awardInput{}
	input.Body.Action = progress.ActionDhikr
	input.Body.Amount = 25

	out, err := h.award(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 25, out.Body.Ledger.Coins)
	require.Len(t, out.Body.NewAchievements, 1)
	assert.Equal(t, "first_step", out.Body.NewAchievements[0].Code)
}

func TestHandler_Award_UnknownAction(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := auth.WithUserID(context.Background(), 7)

	svc.On("Award", mock.Anything, 7, progress.Action("nap"), 5).Return(progress.AwardResult{}, progress.ErrUnknownAction)

	input := &awardInput{}
	input.Body.Action = "nap"
	input.Body.Amount = 5

	_, err := h.award(ctx, input)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
}

func TestHandler_Spend(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "insufficient funds", err: progress.ErrInsufficientFunds, status: http.StatusConflict},
		{name: "storage failure", err: errors.New("database error"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			h := NewHandler(svc, slog.Default(), nil)
			ctx := auth.WithUserID(context.Background(), 7)

			svc.On("Spend", mock.Anything, 7, 50).Return(progress.Ledger{Coins: 5}, tt.err)

			input := &spendInput{}
			input.Body.Amount = 50

			_, err := h.spend(ctx, input)
			assert.Equal(t, tt.status, statusOf(t, err))
		})
	}

	t.Run("success", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)
		ctx := auth.WithUserID(context.Background(), 7)

		svc.On("Spend", mock.Anything, 7, 5).Return(progress.Ledger{Coins: 20}, nil)

		input := &spendInput{}
		input.Body.Amount = 5

		out, err := h.spend(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, 20, out.Body.Ledger.Coins)
	})
}
