package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:   "auth-register",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/register",
		Summary:       "Регистрация пользователя",
		Description:   "Создает неподтвержденного пользователя и отправляет письмо со ссылкой подтверждения.",
		Tags:          []string{"auth"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Авторизация пользователя",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) verifyOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-verify",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/verify",
		Summary:     "Подтверждение email",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) resetRequestOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-password-reset",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/password-reset",
		Summary:     "Запрос сброса пароля",
		Description: "Всегда отвечает 200, независимо от существования пользователя.",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) resetConfirmOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-password-reset-confirm",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/password-reset/confirm",
		Summary:     "Установка нового пароля",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}
