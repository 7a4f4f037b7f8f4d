package progress

import (
	"context"
	"errors"

	"organizer/internal/app/server/api/http/middleware/auth"
	"organizer/internal/domain/progress"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    progress.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service progress.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "progress_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.loadOp(), h.load)
	huma.Register(api, h.awardOp(), h.award)
	huma.Register(api, h.spendOp(), h.spend)
}

func (h *Handler) load(ctx context.Context, _ *struct{}) (*loadOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	snap, err := h.service.Load(ctx, userID)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &loadOutput{Body: loadResponse{
		Status:            "Ok",
		Ledger:            snap.Ledger,
		Achievements:      snap.Achievements,
		DailyBonusGranted: snap.DailyBonusGranted,
	}}, nil
}

func (h *Handler) award(ctx context.Context, input *awardInput) (*awardOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	res, err := h.service.Award(ctx, userID, input.Body.Action, input.Body.Amount)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &awardOutput{Body: awardResponse{
		Status:          "Ok",
		Ledger:          res.Ledger,
		NewAchievements: res.NewAchievements,
	}}, nil
}

func (h *Handler) spend(ctx context.Context, input *spendInput) (*spendOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	ledger, err := h.service.Spend(ctx, userID, input.Body.Amount)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &spendOutput{Body: spendResponse{Status: "Ok", Ledger: ledger}}, nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, progress.ErrInsufficientFunds):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, progress.ErrInvalidAmount), errors.Is(err, progress.ErrUnknownAction):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		h.log.Error("progress operation failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
