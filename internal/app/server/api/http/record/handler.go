package record

import (
	"context"
	"errors"

	"organizer/internal/app/server/api/http/middleware/auth"
	"organizer/internal/domain/record"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    record.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service record.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "record_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.saveOp(), h.save)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	records, err := h.service.List(ctx, userID, record.Filter{Kind: record.Kind(input.Kind), Scope: input.Scope})
	if err != nil {
		return nil, h.mapError(err)
	}

	return &listOutput{
		Body: listResponse{Status: "Ok", Records: records, Total: len(records)},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	rec, err := h.service.Create(ctx, userID, input.Body.Kind, input.Body.Scope, input.Body.Payload)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &output{Body: response{Status: "Ok", Record: rec}}, nil
}

func (h *Handler) save(ctx context.Context, input *saveInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	rec, err := h.service.Save(ctx, userID, input.ID, input.Body.Kind, input.Body.Scope, input.Body.Payload)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &output{Body: response{Status: "Ok", Record: rec}}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, h.mapError(err)
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, record.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, record.ErrScopeChanged):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, record.ErrInvalidData):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		h.log.Error("record operation failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
