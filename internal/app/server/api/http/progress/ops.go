package progress

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) loadOp() huma.Operation {
	return huma.Operation{
		OperationID: "progress-load",
		Method:      http.MethodGet,
		Path:        "/api/v1/progress",
		Summary:     "Текущий прогресс",
		Description: "Возвращает монеты, опыт, уровень, серию и достижения. Раз в сутки начисляет ежедневный бонус.",
		Tags:        []string{"progress"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) awardOp() huma.Operation {
	return huma.Operation{
		OperationID: "progress-award",
		Method:      http.MethodPost,
		Path:        "/api/v1/progress/award",
		Summary:     "Начислить монеты за действие",
		Tags:        []string{"progress"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) spendOp() huma.Operation {
	return huma.Operation{
		OperationID: "progress-spend",
		Method:      http.MethodPost,
		Path:        "/api/v1/progress/spend",
		Summary:     "Потратить монеты",
		Tags:        []string{"progress"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
