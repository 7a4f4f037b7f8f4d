package record

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/records",
		Summary:     "Список записей пользователя",
		Description: "Фильтрация по виду записи и пространству.",
		Tags:        []string{"records"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "records-create",
		Method:        http.MethodPost,
		Path:          "/api/v1/records",
		Summary:       "Создать запись",
		Tags:          []string{"records"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) saveOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-save",
		Method:      http.MethodPut,
		Path:        "/api/v1/records/{id}",
		Summary:     "Сохранить запись",
		Description: "Обновляет запись; неизвестный id создает новую запись с этим id. Пространство записи менять нельзя.",
		Tags:        []string{"records"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/records/{id}",
		Summary:     "Удалить запись",
		Tags:        []string{"records"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
