// Маршруты:
//
//	GET    /api/v1/health
//	POST   /api/v1/auth/register
//	POST   /api/v1/auth/login
//	POST   /api/v1/auth/verify
//	POST   /api/v1/auth/password-reset
//	POST   /api/v1/auth/password-reset/confirm
//	GET    /api/v1/records        (auth)
//	POST   /api/v1/records        (auth)
//	PUT    /api/v1/records/{id}   (auth)
//	DELETE /api/v1/records/{id}   (auth)
//	GET    /api/v1/progress       (auth)
//	POST   /api/v1/progress/award (auth)
//	POST   /api/v1/progress/spend (auth)
//	GET    /metrics
package api

import (
	healthAPI "organizer/internal/app/server/api/http/health"
	"organizer/internal/app/server/api/http/middleware"
	"organizer/internal/app/server/api/http/middleware/auth"
	"organizer/internal/app/server/api/http/middleware/logger"
	metricsMW "organizer/internal/app/server/api/http/middleware/metrics"
	progressAPI "organizer/internal/app/server/api/http/progress"
	recordAPI "organizer/internal/app/server/api/http/record"
	userAPI "organizer/internal/app/server/api/http/user"
	"organizer/internal/app/server/config"
	"organizer/internal/domain/progress"
	"organizer/internal/domain/record"
	"organizer/internal/domain/session"
	"organizer/internal/domain/user"
	"organizer/internal/infrastructure/metrics"
	"organizer/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

// Deps - внешние зависимости сервера
type Deps struct {
	Config  *config.Config
	Storage *postgres.Storage
	Tokens  user.TokenStore
	Mailer  user.Sender
	Metrics *metrics.Registry
}

type Handlers struct {
	Health   *healthAPI.Handler
	User     *userAPI.Handler
	Record   *recordAPI.Handler
	Progress *progressAPI.Handler
}

// New создает *chi.Mux со всеми операциями huma и эндпоинтом /metrics
func New(deps Deps, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	cfg := huma.DefaultConfig("Organizer API", "1.0.0")
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, cfg)

	h := handlers(deps, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Record.SetupRoutes(API)
	h.Progress.SetupRoutes(API)

	mux.Handle("/metrics", deps.Metrics.Handler())

	return mux
}

func handlers(deps Deps, log *slog.Logger) *Handlers {
	pool := deps.Storage.Pool()

	sessionRepo := postgres.NewSessionRepository(deps.Storage, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	countMW := metricsMW.New(deps.Metrics.HTTPRequests)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(countMW.Middleware())
	healthHandler := healthAPI.NewHandler(deps.Storage, log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(pool, log)
	userService := user.NewService(userRepo, deps.Tokens, deps.Mailer, user.NewCredentialsValidator(),
		deps.Config.Server.PublicURL, log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(countMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	recordRepo := postgres.NewRecordRepository(pool, log)
	recordService := record.NewService(recordRepo, log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(countMW.Middleware())
	middlewares.Add(authMW.Middleware())
	recordHandler := recordAPI.NewHandler(recordService, log, middlewares.GetAllAndClear())

	progressRepo := postgres.NewProgressRepository(pool, log)
	progressService := progress.NewService(progressRepo, progress.Options{
		Location:        deps.Config.Ledger.Location,
		DailyBonusCoins: deps.Config.Ledger.DailyBonusCoins,
	}, deps.Metrics.Progress(), log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(countMW.Middleware())
	middlewares.Add(authMW.Middleware())
	progressHandler := progressAPI.NewHandler(progressService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:   healthHandler,
		User:     userHandler,
		Record:   recordHandler,
		Progress: progressHandler,
	}
}
