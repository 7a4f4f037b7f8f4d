package user

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (int, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	MarkVerified(ctx context.Context, userID int) error
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
}

// Purpose - назначение одноразового токена
type Purpose string

const (
	PurposeVerify Purpose = "verify"
	PurposeReset  Purpose = "reset"
)

// TokenStore выдает одноразовые токены с ограниченным сроком жизни
type TokenStore interface {
	Issue(ctx context.Context, purpose Purpose, userID int, ttl time.Duration) (string, error)
	// Consume возвращает владельца токена и удаляет токен
	Consume(ctx context.Context, purpose Purpose, token string) (int, error)
}

// Sender отправляет транзакционные письма
type Sender interface {
	Send(ctx context.Context, to []string, subject string, htmlBody string) error
}
