package record

import "organizer/internal/domain/record"

type listInput struct {
	Kind  string `query:"kind" doc:"Вид записи: note, shopping_item, task, goal, event, habit"`
	Scope string `query:"scope" example:"FAMILY" doc:"Пространство (категория)"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Status  string          `json:"status"`
	Records []record.Record `json:"records"`
	Total   int             `json:"total"`
}

type request struct {
	Kind    record.Kind    `json:"kind" doc:"Вид записи"`
	Scope   string         `json:"scope" minLength:"1" maxLength:"64" example:"FAMILY" doc:"Пространство (категория)"`
	Payload map[string]any `json:"payload,omitempty" doc:"Произвольное содержимое записи"`
}

type createInput struct {
	Body request
}

type saveInput struct {
	ID   string `path:"id" maxLength:"64" doc:"ID записи"`
	Body request
}

type deleteInput struct {
	ID string `path:"id" maxLength:"64" doc:"ID записи"`
}

type output struct {
	Body response
}

type response struct {
	Status string         `json:"status"`
	Record *record.Record `json:"record,omitempty"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}
