package client

import (
	"organizer/internal/domain/progress"
	"organizer/internal/domain/record"
)

// rewards - монеты за создание записи каждого вида
var rewards = map[record.Kind]struct {
	action progress.Action
	amount int
}{
	record.KindNote:         {progress.ActionNote, 5},
	record.KindShoppingItem: {progress.ActionShopping, 2},
	record.KindTask:         {progress.ActionTask, 10},
	record.KindGoal:         {progress.ActionGoal, 20},
	record.KindEvent:        {progress.ActionEvent, 5},
	record.KindHabit:        {progress.ActionHabit, 10},
}

// RewardFor возвращает действие и награду за новую запись вида kind
func RewardFor(kind record.Kind) (progress.Action, int, bool) {
	r, ok := rewards[kind]
	return r.action, r.amount, ok
}
