package progress

import "time"

// Rule - условие разблокировки достижения
type Rule struct {
	Code        string
	Name        string
	Description string
	Match       func(l Ledger, action Action) bool
}

// Catalog - набор правил, проверяемых после каждого начисления
type Catalog []Rule

// DefaultCatalog возвращает стандартный набор достижений
func DefaultCatalog() Catalog {
	return Catalog{
		{
			Code: "first_step", Name: "Первый шаг", Description: "Первое действие",
			Match: func(l Ledger, _ Action) bool { return l.TotalActions >= 1 },
		},
		{
			Code: "dedicated", Name: "Упорство", Description: "50 действий",
			Match: func(l Ledger, _ Action) bool { return l.TotalActions >= 50 },
		},
		{
			Code: "centurion", Name: "Сотня", Description: "100 очков опыта",
			Match: func(l Ledger, _ Action) bool { return l.XP >= 100 },
		},
		{
			Code: "level_5", Name: "Пятый уровень", Description: "Достигнут 5 уровень",
			Match: func(l Ledger, _ Action) bool { return l.Level >= 5 },
		},
		{
			Code: "streak_3", Name: "Три дня подряд", Description: "Серия из 3 дней",
			Match: func(l Ledger, _ Action) bool { return l.DailyStreak >= 3 },
		},
		{
			Code: "streak_7", Name: "Неделя подряд", Description: "Серия из 7 дней",
			Match: func(l Ledger, _ Action) bool { return l.DailyStreak >= 7 },
		},
		{
			Code: "hafiz_path", Name: "Путь хафиза", Description: "Первое чтение Корана",
			Match: func(_ Ledger, a Action) bool { return a == ActionQuran },
		},
		{
			Code: "dhikr_devotee", Name: "Поминание", Description: "Первый зикр",
			Match: func(_ Ledger, a Action) bool { return a == ActionDhikr },
		},
		{
			Code: "punctual", Name: "Пунктуальность", Description: "Первый намаз отмечен вовремя",
			Match: func(_ Ledger, a Action) bool { return a == ActionPrayer },
		},
	}
}

// Evaluate возвращает достижения, которые стали доступны и еще не получены
func (c Catalog) Evaluate(l Ledger, action Action, owned map[string]bool, now time.Time) []Achievement {
	var unlocked []Achievement
	for _, rule := range c {
		if owned[rule.Code] || !rule.Match(l, action) {
			continue
		}
		unlocked = append(unlocked, Achievement{
			Code:        rule.Code,
			Name:        rule.Name,
			Description: rule.Description,
			UnlockedAt:  now,
		})
	}
	return unlocked
}
