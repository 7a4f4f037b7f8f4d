package record

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

// Kind - вид пользовательской записи
type Kind string

const (
	KindNote         Kind = "note"
	KindShoppingItem Kind = "shopping_item"
	KindTask         Kind = "task"
	KindGoal         Kind = "goal"
	KindEvent        Kind = "event"
	KindHabit        Kind = "habit"
)

var kinds = []Kind{KindNote, KindShoppingItem, KindTask, KindGoal, KindEvent, KindHabit}

// Kinds возвращает все поддерживаемые виды записей
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

func (Kind) Schema(huma.Registry) *huma.Schema {
	enum := make([]any, 0, len(kinds))
	for _, k := range kinds {
		enum = append(enum, string(k))
	}
	return &huma.Schema{
		Type:        "string",
		Enum:        enum,
		Description: "Вид записи",
		Examples:    []any{KindNote},
	}
}

// Validate реализует интерфейс huma.Validatable.
func (k Kind) Validate() error {
	for _, known := range kinds {
		if k == known {
			return nil
		}
	}
	return fmt.Errorf("неверный вид записи: %s", k)
}

func (k Kind) String() string {
	return string(k)
}

// DisplayName возвращает человекочитаемое название вида.
func (k Kind) DisplayName() string {
	switch k {
	case KindNote:
		return "Заметка"
	case KindShoppingItem:
		return "Покупка"
	case KindTask:
		return "Задача"
	case KindGoal:
		return "Цель"
	case KindEvent:
		return "Событие"
	case KindHabit:
		return "Привычка"
	default:
		return "Неизвестный вид"
	}
}
