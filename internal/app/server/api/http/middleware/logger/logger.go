package logger

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/oklog/ulid/v2"
	"golang.org/x/exp/slog"
)

// RequestIDHeader - заголовок для сквозной корреляции запросов клиента и сервера
const RequestIDHeader = "X-Request-ID"

// Logger пишет одну запись на каждую операцию API
type Logger struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Logger {
	return &Logger{
		log: log.With(slog.String("component", "http_logger")),
	}
}

// Middleware присваивает запросу идентификатор и логирует операцию после ответа.
// 5xx пишутся как ошибки, 4xx как предупреждения.
func (l *Logger) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		requestID := ctx.Header(RequestIDHeader)
		if requestID == "" {
			requestID = ulid.Make().String()
		}
		ctx.SetHeader(RequestIDHeader, requestID)

		attrs := []any{
			slog.String("request_id", requestID),
			slog.String("method", ctx.Method()),
			slog.String("path", ctx.URL().Path),
			slog.String("remote_addr", ctx.RemoteAddr()),
		}
		if op := ctx.Operation(); op != nil {
			attrs = append(attrs,
				slog.String("operation", op.OperationID),
				slog.Any("tags", op.Tags),
			)
		}

		next(ctx)

		status := ctx.Status()
		attrs = append(attrs,
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		)

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		l.log.Log(ctx.Context(), level, "api operation", attrs...)
	}
}
