package redis

import (
	"context"
	"errors"
	"sync"
	"time"

	"organizer/internal/domain/user"

	"github.com/google/uuid"
)

type memoryToken struct {
	userID    int
	expiresAt time.Time
}

// MemoryTokenStore - замена Redis для локального запуска без него
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryToken
	now    func() time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens: make(map[string]memoryToken),
		now:    time.Now,
	}
}

func (s *MemoryTokenStore) Issue(_ context.Context, purpose user.Purpose, userID int, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}

	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenKey(purpose, token)] = memoryToken{userID: userID, expiresAt: s.now().Add(ttl)}
	return token, nil
}

func (s *MemoryTokenStore) Consume(_ context.Context, purpose user.Purpose, token string) (int, error) {
	key := tokenKey(purpose, token)

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[key]
	if !ok {
		return 0, user.ErrTokenInvalid
	}
	delete(s.tokens, key)

	if !s.now().Before(t.expiresAt) {
		return 0, user.ErrTokenInvalid
	}
	return t.userID, nil
}
