package record

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

func (m *MockRepository) List(ctx context.Context, userID int, filter Filter) ([]Record, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, userID int, id string) (*Record, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, rec *Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, rec *Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, userID int, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.Default())
}

func TestService_List(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	records := []Record{
		{ID: "a", UserID: 1, Kind: KindNote, Scope: "FAMILY"},
		{ID: "b", UserID: 1, Kind: KindNote, Scope: "FAMILY"},
	}
	mockRepo.On("List", mock.Anything, 1, Filter{Kind: KindNote, Scope: "FAMILY"}).Return(records, nil)

	got, err := service.List(context.Background(), 1, Filter{Kind: KindNote, Scope: " FAMILY "})
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	mockRepo.AssertExpectations(t)
}

func TestService_List_EmptyIsNotNil(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("List", mock.Anything, 1, Filter{}).Return(nil, nil)

	got, err := service.List(context.Background(), 1, Filter{})
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_List_InvalidKind(t *testing.T) {
	service := newTestService(new(MockRepository))

	_, err := service.List(context.Background(), 1, Filter{Kind: "recipe"})
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *Record) bool {
		return r.UserID == 1 &&
			r.Kind == KindNote &&
			r.Scope == "FAMILY" &&
			r.ID != "" &&
			r.Payload["title"] == "a" &&
			!r.CreatedAt.IsZero() &&
			r.CreatedAt.Equal(r.UpdatedAt)
	})).Return(nil)

	rec, err := service.Create(context.Background(), 1, KindNote, "FAMILY", map[string]any{"title": "a"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "a", rec.Title())

	mockRepo.AssertExpectations(t)
}

func TestService_Create_InvalidData(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		scope string
	}{
		{name: "unknown kind", kind: "recipe", scope: "FAMILY"},
		{name: "empty scope", kind: KindNote, scope: "   "},
		{name: "scope too long", kind: KindNote, scope: string(make([]byte, maxScopeLen+1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(new(MockRepository))

			_, err := service.Create(context.Background(), 1, tt.kind, tt.scope, nil)
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}
}

func TestService_Create_NilPayload(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	rec, err := service.Create(context.Background(), 1, KindGoal, "HEALTH", nil)
	require.NoError(t, err)
	assert.NotNil(t, rec.Payload)
}

func TestService_Save_UpdatesInPlace(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	created := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	current := &Record{
		ID: "n1", UserID: 1, Kind: KindNote, Scope: "FAMILY",
		Payload: map[string]any{"title": "old"}, CreatedAt: created, UpdatedAt: created,
	}
	mockRepo.On("Get", mock.Anything, 1, "n1").Return(current, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *Record) bool {
		return r.ID == "n1" && r.Payload["title"] == "new" && r.CreatedAt.Equal(created)
	})).Return(nil)

	rec, err := service.Save(context.Background(), 1, "n1", KindNote, "FAMILY", map[string]any{"title": "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", rec.Title())
	assert.False(t, rec.UpdatedAt.Before(created))

	mockRepo.AssertExpectations(t)
}

func TestService_Save_UpdatedAtNeverGoesBack(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	clock := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return clock }

	future := clock.Add(time.Hour)
	current := &Record{ID: "n1", UserID: 1, Kind: KindNote, Scope: "FAMILY", UpdatedAt: future}
	mockRepo.On("Get", mock.Anything, 1, "n1").Return(current, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	rec, err := service.Save(context.Background(), 1, "n1", KindNote, "FAMILY", nil)
	require.NoError(t, err)
	assert.True(t, rec.UpdatedAt.Equal(future))
}

func TestService_Save_UnknownIDIsCreated(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Get", mock.Anything, 1, "01JOFFLINE").Return(nil, ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *Record) bool {
		return r.ID == "01JOFFLINE" && r.Scope == "FAMILY"
	})).Return(nil)

	rec, err := service.Save(context.Background(), 1, "01JOFFLINE", KindNote, "FAMILY", nil)
	require.NoError(t, err)
	assert.Equal(t, "01JOFFLINE", rec.ID)

	mockRepo.AssertExpectations(t)
}

func TestService_Save_ScopeCannotChange(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	current := &Record{ID: "n1", UserID: 1, Kind: KindNote, Scope: "FAMILY"}
	mockRepo.On("Get", mock.Anything, 1, "n1").Return(current, nil)

	_, err := service.Save(context.Background(), 1, "n1", KindNote, "WORK", nil)
	assert.ErrorIs(t, err, ErrScopeChanged)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Save_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Get", mock.Anything, 1, "n1").Return(nil, errors.New("database error"))

	_, err := service.Save(context.Background(), 1, "n1", KindNote, "FAMILY", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
}

func TestService_Delete(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Delete", mock.Anything, 1, "n1").Return(nil)
	mockRepo.On("Delete", mock.Anything, 1, "missing").Return(ErrNotFound)

	assert.NoError(t, service.Delete(context.Background(), 1, "n1"))
	assert.Equal(t, ErrNotFound, service.Delete(context.Background(), 1, "missing"))
}
