package postgres

import (
	"context"
	"fmt"

	"organizer/internal/domain/progress"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type ProgressRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewProgressRepository(pool *pgxpool.Pool, log *slog.Logger) *ProgressRepository {
	return &ProgressRepository{
		pool: pool,
		log:  log.With("component", "progress_repository"),
	}
}

// Get возвращает счетчик пользователя, создавая строку при первом обращении
func (r *ProgressRepository) Get(ctx context.Context, userID int) (progress.Ledger, error) {
	const query = `
		INSERT INTO progress_ledgers (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING coins, xp, total_actions, daily_streak, last_activity, last_daily_bonus`

	l := progress.Ledger{UserID: userID}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&l.Coins, &l.XP, &l.TotalActions, &l.DailyStreak, &l.LastActivity, &l.LastDailyBonus)
	if err != nil {
		r.log.Error("failed to get ledger", "user_id", userID, "error", err)
		return progress.Ledger{}, fmt.Errorf("get ledger: %w", err)
	}
	l.Recalculate()

	return l, nil
}

// Update меняет счетчик внутри транзакции, строка заблокирована до коммита
func (r *ProgressRepository) Update(ctx context.Context, userID int, fn func(*progress.Ledger) error) (progress.Ledger, error) {
	const (
		ensure = `INSERT INTO progress_ledgers (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
		lock   = `
			SELECT coins, xp, total_actions, daily_streak, last_activity, last_daily_bonus
			FROM progress_ledgers WHERE user_id = $1
			FOR UPDATE`
		save = `
			UPDATE progress_ledgers
			SET coins = $1, xp = $2, total_actions = $3, daily_streak = $4,
			    last_activity = $5, last_daily_bonus = $6
			WHERE user_id = $7`
	)

	var l progress.Ledger
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, ensure, userID); err != nil {
			return fmt.Errorf("ensure ledger: %w", err)
		}

		l = progress.Ledger{UserID: userID}
		if err := tx.QueryRow(ctx, lock, userID).Scan(
			&l.Coins, &l.XP, &l.TotalActions, &l.DailyStreak, &l.LastActivity, &l.LastDailyBonus); err != nil {
			return fmt.Errorf("lock ledger: %w", err)
		}
		l.Recalculate()

		if err := fn(&l); err != nil {
			return err
		}
		l.UserID = userID

		if _, err := tx.Exec(ctx, save,
			l.Coins, l.XP, l.TotalActions, l.DailyStreak, l.LastActivity, l.LastDailyBonus, userID); err != nil {
			return fmt.Errorf("save ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Debug("ledger update rolled back", "user_id", userID, "error", err)
		return progress.Ledger{}, err
	}

	return l, nil
}

func (r *ProgressRepository) Achievements(ctx context.Context, userID int) ([]progress.Achievement, error) {
	const query = `
		SELECT code, name, description, unlocked_at
		FROM achievements WHERE user_id = $1
		ORDER BY unlocked_at, code`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	achievements := make([]progress.Achievement, 0)
	for rows.Next() {
		var a progress.Achievement
		if err := rows.Scan(&a.Code, &a.Name, &a.Description, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}

	return achievements, rows.Err()
}

func (r *ProgressRepository) Unlock(ctx context.Context, userID int, a progress.Achievement) (bool, error) {
	const query = `
		INSERT INTO achievements (user_id, code, name, description, unlocked_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, code) DO NOTHING`

	result, err := r.pool.Exec(ctx, query, userID, a.Code, a.Name, a.Description, a.UnlockedAt)
	if err != nil {
		return false, fmt.Errorf("unlock achievement: %w", err)
	}
	return result.RowsAffected() == 1, nil
}
