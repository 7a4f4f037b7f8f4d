package user

import (
	"context"
	"errors"

	"organizer/internal/domain/session"
	"organizer/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log.With("component", "user_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.verifyOp(), h.verify)
	huma.Register(api, h.resetRequestOp(), h.resetRequest)
	huma.Register(api, h.resetConfirmOp(), h.resetConfirm)
}

func (h *Handler) register(ctx context.Context, input *credentialsInput) (*registerOutput, error) {
	userID, err := h.service.Register(ctx, input.Body)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &registerOutput{Body: RegisterResponse{ID: userID, Status: "Ok"}}, nil
}

func (h *Handler) login(ctx context.Context, input *credentialsInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body)
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("failed to create session", "user_id", u.ID, "error", err)
		return nil, huma.Error500InternalServerError("create session")
	}

	return &loginOutput{Body: LoginResponse{Token: token, Status: "Ok"}}, nil
}

func (h *Handler) verify(ctx context.Context, input *verifyInput) (*statusOutput, error) {
	if err := h.service.Verify(ctx, input.Body.Token); err != nil {
		return nil, h.mapError(err)
	}
	return ok(), nil
}

func (h *Handler) resetRequest(ctx context.Context, input *resetRequestInput) (*statusOutput, error) {
	if err := h.service.RequestPasswordReset(ctx, input.Body.Email); err != nil {
		h.log.Error("password reset request failed", "error", err)
	}
	return ok(), nil
}

func (h *Handler) resetConfirm(ctx context.Context, input *resetConfirmInput) (*statusOutput, error) {
	if err := h.service.ResetPassword(ctx, input.Body.Token, input.Body.Password); err != nil {
		return nil, h.mapError(err)
	}
	return ok(), nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, user.ErrAlreadyExists):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, user.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, user.ErrTokenInvalid):
		return huma.Error400BadRequest(err.Error())
	default:
		h.log.Error("auth operation failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}

func ok() *statusOutput {
	return &statusOutput{Body: StatusResponse{Status: "Ok"}}
}
