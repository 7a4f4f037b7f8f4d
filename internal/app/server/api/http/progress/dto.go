package progress

import "organizer/internal/domain/progress"

type loadOutput struct {
	Body loadResponse
}

type loadResponse struct {
	Status            string                 `json:"status"`
	Ledger            progress.Ledger        `json:"ledger"`
	Achievements      []progress.Achievement `json:"achievements"`
	DailyBonusGranted bool                   `json:"daily_bonus_granted"`
}

type awardInput struct {
	Body struct {
		Action progress.Action `json:"action" example:"dhikr" doc:"Действие: prayer, quran, dhikr, note, task, goal, shopping, event, habit"`
		Amount int             `json:"amount" minimum:"1" maximum:"1000" example:"10" doc:"Количество монет"`
	}
}

type awardOutput struct {
	Body awardResponse
}

type awardResponse struct {
	Status          string                 `json:"status"`
	Ledger          progress.Ledger        `json:"ledger"`
	NewAchievements []progress.Achievement `json:"new_achievements"`
}

type spendInput struct {
	Body struct {
		Amount int `json:"amount" minimum:"1" example:"5" doc:"Количество монет к списанию"`
	}
}

type spendOutput struct {
	Body spendResponse
}

type spendResponse struct {
	Status string          `json:"status"`
	Ledger progress.Ledger `json:"ledger"`
}
