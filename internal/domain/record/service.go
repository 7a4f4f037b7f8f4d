package record

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const (
	maxScopeLen = 64
	maxIDLen    = 64
)

type Servicer interface {
	List(ctx context.Context, userID int, filter Filter) ([]Record, error)
	Create(ctx context.Context, userID int, kind Kind, scope string, payload map[string]any) (*Record, error)
	Save(ctx context.Context, userID int, id string, kind Kind, scope string, payload map[string]any) (*Record, error)
	Delete(ctx context.Context, userID int, id string) error
}

// Service defines the business logic for record operations
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewService creates a new record service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "record_service"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// List returns the records of one user, optionally narrowed by kind and scope
func (s *Service) List(ctx context.Context, userID int, filter Filter) ([]Record, error) {
	if filter.Kind != "" {
		if err := filter.Kind.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	}
	filter.Scope = strings.TrimSpace(filter.Scope)

	records, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		s.log.Error("failed to list records", "user_id", userID, "kind", filter.Kind, "scope", filter.Scope, "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	if records == nil {
		records = []Record{}
	}

	return records, nil
}

// Create stores a new record with a server generated id
func (s *Service) Create(ctx context.Context, userID int, kind Kind, scope string, payload map[string]any) (*Record, error) {
	return s.create(ctx, userID, uuid.NewString(), kind, scope, payload)
}

// Save updates the record in place. An id unknown for this user is created as is,
// so records first written offline keep their client generated id.
func (s *Service) Save(ctx context.Context, userID int, id string, kind Kind, scope string, payload map[string]any) (*Record, error) {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxIDLen {
		return nil, fmt.Errorf("%w: bad id", ErrInvalidData)
	}

	current, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.create(ctx, userID, id, kind, scope, payload)
		}
		return nil, fmt.Errorf("get record for update: %w", err)
	}

	scope = strings.TrimSpace(scope)
	if current.Scope != scope {
		return nil, ErrScopeChanged
	}
	if current.Kind != kind {
		return nil, fmt.Errorf("%w: kind cannot change", ErrInvalidData)
	}

	updated := *current
	updated.Payload = normalizePayload(payload)
	updated.UpdatedAt = s.now()
	if updated.UpdatedAt.Before(current.UpdatedAt) {
		updated.UpdatedAt = current.UpdatedAt
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		s.log.Error("failed to update record", "record_id", id, "user_id", userID, "error", err)
		return nil, fmt.Errorf("update record: %w", err)
	}

	s.log.Info("record updated successfully", "record_id", id, "user_id", userID, "kind", kind)
	return &updated, nil
}

// Delete permanently deletes a record
func (s *Service) Delete(ctx context.Context, userID int, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete record", "record_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}

	s.log.Info("record deleted successfully", "record_id", id, "user_id", userID)
	return nil
}

func (s *Service) create(ctx context.Context, userID int, id string, kind Kind, scope string, payload map[string]any) (*Record, error) {
	if err := kind.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	scope = strings.TrimSpace(scope)
	if scope == "" || len(scope) > maxScopeLen {
		return nil, fmt.Errorf("%w: bad scope", ErrInvalidData)
	}

	now := s.now()
	rec := &Record{
		ID:        id,
		UserID:    userID,
		Kind:      kind,
		Scope:     scope,
		Payload:   normalizePayload(payload),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.log.Error("failed to create record", "user_id", userID, "kind", kind, "error", err)
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.log.Info("record created successfully", "record_id", rec.ID, "user_id", userID, "kind", kind, "scope", scope)
	return rec, nil
}

func normalizePayload(payload map[string]any) map[string]any {
	if payload == nil {
		return map[string]any{}
	}
	return payload
}
