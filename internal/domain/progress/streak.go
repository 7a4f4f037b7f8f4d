package progress

import "time"

// StreakPolicy считает серию по календарным дням в заданной зоне, без льготного периода
type StreakPolicy struct {
	Location *time.Location
}

func (p StreakPolicy) loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// daysBetween - число календарных дней от a до b
func (p StreakPolicy) daysBetween(a, b time.Time) int {
	ay, am, ad := a.In(p.loc()).Date()
	by, bm, bd := b.In(p.loc()).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / (24 * time.Hour))
}

// SameDay сообщает, попадают ли моменты в один календарный день
func (p StreakPolicy) SameDay(a, b time.Time) bool {
	return p.daysBetween(a, b) == 0
}

// Advance обновляет серию перед фиксацией нового действия в момент now.
// Должен вызываться до изменения LastActivity.
func (p StreakPolicy) Advance(l *Ledger, now time.Time) {
	if l.LastActivity == nil {
		l.DailyStreak = 1
		return
	}

	switch days := p.daysBetween(*l.LastActivity, now); {
	case days <= 0:
		if l.DailyStreak < 1 {
			l.DailyStreak = 1
		}
	case days == 1:
		l.DailyStreak++
	default:
		l.DailyStreak = 1
	}
}

// Normalize обнуляет серию, если был пропущен целый день
func (p StreakPolicy) Normalize(l *Ledger, now time.Time) {
	if l.LastActivity == nil {
		l.DailyStreak = 0
		return
	}
	if p.daysBetween(*l.LastActivity, now) > 1 {
		l.DailyStreak = 0
	}
}
