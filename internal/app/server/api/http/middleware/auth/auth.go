package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"organizer/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const bearerPrefix = "Bearer "

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const UserIDKey contextKey = "userID"

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")

		if !strings.HasPrefix(header, bearerPrefix) {
			a.log.Debug("missing bearer token", "path", ctx.URL().Path)
			a.unauthorized(ctx)
			return
		}

		userID, err := a.session.Validate(ctx.Context(), strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			a.log.Debug("session rejected", "error", err)
			a.unauthorized(ctx)
			return
		}

		next(huma.WithContext(ctx, WithUserID(ctx.Context(), userID)))
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(http.StatusUnauthorized)

	err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"status": "Error",
		"error":  "Unauthorized",
	})
	if err != nil {
		a.log.Error("failed to encode response", "error", err)
	}
}

// WithUserID кладет идентификатор пользователя в контекст
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}
