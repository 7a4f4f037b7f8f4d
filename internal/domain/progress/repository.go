package progress

import "context"

type Repository interface {
	// Get возвращает счетчик пользователя, создавая нулевой при отсутствии
	Get(ctx context.Context, userID int) (Ledger, error)
	// Update блокирует счетчик на время fn и сохраняет результат; ошибка fn откатывает изменения
	Update(ctx context.Context, userID int, fn func(*Ledger) error) (Ledger, error)
	Achievements(ctx context.Context, userID int) ([]Achievement, error)
	// Unlock добавляет достижение; false, если код уже был получен
	Unlock(ctx context.Context, userID int, a Achievement) (bool, error)
}

// Observer получает события начислений, используется для метрик
type Observer interface {
	CoinsAwarded(action Action, amount int)
	AchievementUnlocked(code string)
}
