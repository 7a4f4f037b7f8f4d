package record

import (
	"time"
)

// Record - запись пользователя (заметка, покупка, задача, цель...)
type Record struct {
	ID        string         `json:"id,omitempty"`
	UserID    int            `json:"-"`
	Kind      Kind           `json:"kind"`
	Scope     string         `json:"scope"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Title возвращает payload.title, если он строковый
func (r Record) Title() string {
	if t, ok := r.Payload["title"].(string); ok {
		return t
	}
	return ""
}

// Filter - параметры выборки списка записей
type Filter struct {
	Kind  Kind
	Scope string
}
