package progress

import (
	"fmt"
	"time"
)

const (
	xpPerLevel = 100
	// MaxAward - верхняя граница одного начисления
	MaxAward = 1000
)

// Ledger - счетчики прогресса пользователя
type Ledger struct {
	UserID         int        `json:"-"`
	Coins          int        `json:"coins"`
	XP             int        `json:"xp"`
	Level          int        `json:"level"`
	TotalActions   int        `json:"total_actions"`
	DailyStreak    int        `json:"daily_streak"`
	LastActivity   *time.Time `json:"last_activity,omitempty"`
	LastDailyBonus *time.Time `json:"-"`
}

// Achievement - разблокированное достижение, неизменяемо
type Achievement struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

// LevelFor вычисляет уровень по опыту: floor(xp/100) + 1
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/xpPerLevel + 1
}

// NewLedger возвращает нулевой счетчик
func NewLedger(userID int) Ledger {
	return Ledger{UserID: userID, Level: LevelFor(0)}
}

// Recalculate приводит производные поля в соответствие с xp
func (l *Ledger) Recalculate() {
	l.Level = LevelFor(l.XP)
}

// Award начисляет монеты и опыт за одно действие
func (l *Ledger) Award(amount int, now time.Time) {
	l.Coins += amount
	l.XP += amount
	l.TotalActions++
	at := now
	l.LastActivity = &at
	l.Recalculate()
}

// Spend списывает монеты, не допуская отрицательного баланса; ноль ничего не меняет
func (l *Ledger) Spend(amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if l.Coins < amount {
		return ErrInsufficientFunds
	}
	l.Coins -= amount
	return nil
}

// Action - вид действия, за которое начисляются монеты
type Action string

const (
	ActionPrayer   Action = "prayer"
	ActionQuran    Action = "quran"
	ActionDhikr    Action = "dhikr"
	ActionNote     Action = "note"
	ActionTask     Action = "task"
	ActionGoal     Action = "goal"
	ActionShopping Action = "shopping"
	ActionEvent    Action = "event"
	ActionHabit    Action = "habit"
)

var actions = map[Action]struct{}{
	ActionPrayer: {}, ActionQuran: {}, ActionDhikr: {}, ActionNote: {}, ActionTask: {},
	ActionGoal: {}, ActionShopping: {}, ActionEvent: {}, ActionHabit: {},
}

func (a Action) Validate() error {
	if _, ok := actions[a]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, a)
	}
	return nil
}

// ValidateAmount проверяет величину одного начисления
func ValidateAmount(amount int) error {
	if amount <= 0 || amount > MaxAward {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	return nil
}

// Snapshot - состояние счетчика вместе с достижениями
type Snapshot struct {
	Ledger            Ledger        `json:"ledger"`
	Achievements      []Achievement `json:"achievements"`
	DailyBonusGranted bool          `json:"daily_bonus_granted"`
}

// AwardResult - результат начисления
type AwardResult struct {
	Ledger          Ledger        `json:"ledger"`
	NewAchievements []Achievement `json:"new_achievements"`
}
