package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Load(ctx context.Context, userID int) (Snapshot, error)
	Award(ctx context.Context, userID int, action Action, amount int) (AwardResult, error)
	Spend(ctx context.Context, userID int, amount int) (Ledger, error)
}

// Options - параметры политики начислений
type Options struct {
	Location        *time.Location
	DailyBonusCoins int
}

type Service struct {
	repo     Repository
	catalog  Catalog
	streak   StreakPolicy
	bonus    int
	observer Observer
	log      *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, opts Options, observer Observer, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		catalog:  DefaultCatalog(),
		streak:   StreakPolicy{Location: opts.Location},
		bonus:    opts.DailyBonusCoins,
		observer: observer,
		log:      log.With("component", "progress_service"),
		now:      time.Now,
	}
}

// Load returns the ledger with achievements and grants the daily bonus once per calendar day
func (s *Service) Load(ctx context.Context, userID int) (Snapshot, error) {
	ledger, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("get ledger: %w", err)
	}

	now := s.now()
	granted := false
	if s.bonusDue(ledger, now) {
		// повторная проверка под блокировкой: параллельные загрузки начисляют бонус один раз
		ledger, err = s.repo.Update(ctx, userID, func(l *Ledger) error {
			if !s.bonusDue(*l, now) {
				return nil
			}
			l.Coins += s.bonus
			l.XP += s.bonus
			at := now
			l.LastDailyBonus = &at
			l.Recalculate()
			granted = true
			return nil
		})
		if err != nil {
			return Snapshot{}, fmt.Errorf("save daily bonus: %w", err)
		}
		if granted {
			s.log.Info("daily bonus granted", "user_id", userID, "coins", s.bonus)
		}
	}
	s.streak.Normalize(&ledger, now)
	ledger.Recalculate()

	achievements, err := s.repo.Achievements(ctx, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list achievements: %w", err)
	}
	if achievements == nil {
		achievements = []Achievement{}
	}

	return Snapshot{
		Ledger:            ledger,
		Achievements:      achievements,
		DailyBonusGranted: granted,
	}, nil
}

// Award applies one rewarded action and unlocks achievements it qualifies for
func (s *Service) Award(ctx context.Context, userID int, action Action, amount int) (AwardResult, error) {
	if err := action.Validate(); err != nil {
		return AwardResult{}, err
	}
	if err := ValidateAmount(amount); err != nil {
		return AwardResult{}, err
	}

	now := s.now()
	ledger, err := s.repo.Update(ctx, userID, func(l *Ledger) error {
		s.streak.Advance(l, now)
		l.Award(amount, now)
		return nil
	})
	if err != nil {
		s.log.Error("failed to save ledger", "user_id", userID, "error", err)
		return AwardResult{}, fmt.Errorf("save ledger: %w", err)
	}
	if s.observer != nil {
		s.observer.CoinsAwarded(action, amount)
	}

	owned, err := s.ownedCodes(ctx, userID)
	if err != nil {
		return AwardResult{}, err
	}

	unlocked := make([]Achievement, 0)
	for _, a := range s.catalog.Evaluate(ledger, action, owned, now) {
		ok, err := s.repo.Unlock(ctx, userID, a)
		if err != nil {
			s.log.Error("failed to unlock achievement", "user_id", userID, "code", a.Code, "error", err)
			continue
		}
		if !ok {
			continue
		}
		unlocked = append(unlocked, a)
		if s.observer != nil {
			s.observer.AchievementUnlocked(a.Code)
		}
	}

	s.log.Info("coins awarded", "user_id", userID, "action", action, "amount", amount,
		"coins", ledger.Coins, "level", ledger.Level, "unlocked", len(unlocked))

	return AwardResult{Ledger: ledger, NewAchievements: unlocked}, nil
}

// Spend deducts coins, never below zero
func (s *Service) Spend(ctx context.Context, userID int, amount int) (Ledger, error) {
	var current Ledger
	ledger, err := s.repo.Update(ctx, userID, func(l *Ledger) error {
		current = *l
		if err := l.Spend(amount); err != nil {
			return err
		}
		l.Recalculate()
		return nil
	})
	if errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrInvalidAmount) {
		return current, err
	}
	if err != nil {
		s.log.Error("failed to save ledger", "user_id", userID, "error", err)
		return Ledger{}, fmt.Errorf("save ledger: %w", err)
	}

	s.log.Info("coins spent", "user_id", userID, "amount", amount, "coins", ledger.Coins)
	return ledger, nil
}

func (s *Service) bonusDue(l Ledger, now time.Time) bool {
	return s.bonus > 0 && (l.LastDailyBonus == nil || !s.streak.SameDay(*l.LastDailyBonus, now))
}

func (s *Service) ownedCodes(ctx context.Context, userID int) (map[string]bool, error) {
	existing, err := s.repo.Achievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	owned := make(map[string]bool, len(existing))
	for _, a := range existing {
		owned[a.Code] = true
	}
	return owned, nil
}
