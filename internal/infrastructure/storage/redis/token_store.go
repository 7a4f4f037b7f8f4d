package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"organizer/internal/app/server/config"
	"organizer/internal/domain/user"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"
)

const keyPrefix = "organizer:token"

// TokenStore хранит одноразовые токены подтверждения и сброса пароля в Redis
type TokenStore struct {
	client *goredis.Client
	log    *slog.Logger
}

// NewClient создает клиента и проверяет соединение
func NewClient(ctx context.Context, cfg config.Redis) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewTokenStore(client *goredis.Client, log *slog.Logger) *TokenStore {
	return &TokenStore{
		client: client,
		log:    log.With("component", "redis_token_store"),
	}
}

func (s *TokenStore) Issue(ctx context.Context, purpose user.Purpose, userID int, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}

	token := uuid.NewString()
	if err := s.client.SetEx(ctx, tokenKey(purpose, token), userID, ttl).Err(); err != nil {
		s.log.Error("failed to store token", "purpose", purpose, "user_id", userID, "error", err)
		return "", fmt.Errorf("store token: %w", err)
	}
	return token, nil
}

// Consume атомарно читает и удаляет токен
func (s *TokenStore) Consume(ctx context.Context, purpose user.Purpose, token string) (int, error) {
	if token == "" {
		return 0, user.ErrTokenInvalid
	}

	val, err := s.client.GetDel(ctx, tokenKey(purpose, token)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, user.ErrTokenInvalid
		}
		return 0, fmt.Errorf("consume token: %w", err)
	}

	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed owner", user.ErrTokenInvalid)
	}
	return userID, nil
}

func tokenKey(purpose user.Purpose, token string) string {
	return keyPrefix + ":" + string(purpose) + ":" + token
}
