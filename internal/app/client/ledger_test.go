package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"organizer/internal/domain/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProgress - сервер прогресса; если release не nil, Award ждет сигнала
type fakeProgress struct {
	mu sync.Mutex

	snapshot progress.Snapshot
	loadErr  error

	award    func(action progress.Action, amount int) (progress.AwardResult, error)
	release  chan struct{}
	awarded  []int
	spendErr error
	spent    []int
}

func (f *fakeProgress) LoadProgress(context.Context) (progress.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot, f.loadErr
}

func (f *fakeProgress) Award(ctx context.Context, action progress.Action, amount int) (progress.AwardResult, error) {
	if f.release != nil {
		<-f.release
	}
	if err := ctx.Err(); err != nil {
		return progress.AwardResult{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.awarded = append(f.awarded, amount)
	return f.award(action, amount)
}

func (f *fakeProgress) Spend(_ context.Context, amount int) (progress.Ledger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spent = append(f.spent, amount)
	return progress.Ledger{}, f.spendErr
}

func serverLedger(coins, xp, total int) progress.Ledger {
	l := progress.Ledger{Coins: coins, XP: xp, TotalActions: total}
	l.Recalculate()
	return l
}

func TestLedger_AddCoinsOptimisticThenReconciled(t *testing.T) {
	ctx := context.Background()
	remote := &fakeProgress{
		release: make(chan struct{}),
		award: func(progress.Action, int) (progress.AwardResult, error) {
			return progress.AwardResult{Ledger: progress.Ledger{Coins: 25, XP: 25, Level: 1, TotalActions: 1}}, nil
		},
	}
	l := NewLedger("amina@example.com", remote, NewMemoryCache(), true, discardLogger())
	l.Load(ctx)

	l.AddCoins(ctx, 25, progress.ActionPrayer)

	optimistic := l.State()
	assert.Equal(t, 25, optimistic.Ledger.Coins)
	assert.Equal(t, 25, optimistic.Ledger.XP)
	assert.Equal(t, 1, optimistic.Ledger.Level)
	assert.Equal(t, 1, optimistic.Pending)
	require.NotNil(t, optimistic.Ledger.LastActivity)

	close(remote.release)
	l.Wait()

	final := l.State()
	assert.Equal(t, 0, final.Pending)
	assert.Equal(t, 25, final.Ledger.Coins)
	assert.Equal(t, 25, final.Ledger.XP)
	assert.Equal(t, 1, final.Ledger.Level)
	assert.Equal(t, 1, final.Ledger.TotalActions)
}

func TestLedger_ServerStateReplacesOptimistic(t *testing.T) {
	ctx := context.Background()
	remote := &fakeProgress{
		award: func(progress.Action, int) (progress.AwardResult, error) {
			// сервер добавил бонус, которого клиент не знал
			return progress.AwardResult{Ledger: progress.Ledger{Coins: 40, XP: 30, Level: 9, TotalActions: 1, DailyStreak: 1}}, nil
		},
	}
	l := NewLedger("amina@example.com", remote, NewMemoryCache(), true, discardLogger())

	l.AddCoins(ctx, 30, progress.ActionQuran)
	l.Wait()

	s := l.State()
	assert.Equal(t, 40, s.Ledger.Coins)
	assert.Equal(t, 30, s.Ledger.XP)
	assert.Equal(t, progress.LevelFor(30), s.Ledger.Level)
	assert.Equal(t, 1, s.Ledger.DailyStreak)
}

func TestLedger_LevelFollowsXP(t *testing.T) {
	ctx := context.Background()
	var mu sync.Mutex
	server := progress.NewLedger(0)
	remote := &fakeProgress{
		award: func(_ progress.Action, amount int) (progress.AwardResult, error) {
			mu.Lock()
			defer mu.Unlock()
			server.Award(amount, time.Now())
			return progress.AwardResult{Ledger: server}, nil
		},
	}
	l := NewLedger("amina@example.com", remote, NewMemoryCache(), true, discardLogger())

	for _, amount := range []int{10, 95, 1, 250, 44} {
		l.AddCoins(ctx, amount, progress.ActionDhikr)
		s := l.State()
		assert.Equal(t, s.Ledger.XP/100+1, s.Ledger.Level)

		l.Wait()
		s = l.State()
		assert.Equal(t, s.Ledger.XP/100+1, s.Ledger.Level)
	}

	s := l.State()
	assert.Equal(t, 400, s.Ledger.XP)
	assert.Equal(t, 5, s.Ledger.Level)
}

func TestLedger_SpendCoins(t *testing.T) {
	ctx := context.Background()
	remote := &fakeProgress{
		award: func(progress.Action, int) (progress.AwardResult, error) {
			return progress.AwardResult{Ledger: serverLedger(50, 50, 1)}, nil
		},
	}
	l := NewLedger("amina@example.com", remote, NewMemoryCache(), true, discardLogger())
	l.AddCoins(ctx, 50, progress.ActionTask)
	l.Wait()

	assert.False(t, l.SpendCoins(ctx, 51))
	assert.Equal(t, 50, l.State().Ledger.Coins)

	assert.True(t, l.SpendCoins(ctx, 20))
	assert.Equal(t, 30, l.State().Ledger.Coins)
	assert.Equal(t, 50, l.State().Ledger.XP)

	assert.True(t, l.SpendCoins(ctx, 30))
	assert.Equal(t, 0, l.State().Ledger.Coins)

	assert.True(t, l.SpendCoins(ctx, 0), "zero always fits the balance")
	assert.False(t, l.SpendCoins(ctx, -5))
	assert.Equal(t, 0, l.State().Ledger.Coins)
	l.Wait()
	assert.Equal(t, []int{20, 30}, remote.spent, "a zero spend is not sent to the server")
}

func TestLedger_SpendFailureIsNotRolledBack(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	remote := &fakeProgress{
		snapshot: progress.Snapshot{Ledger: serverLedger(100, 100, 3)},
		spendErr: errUnreachable,
	}
	l := NewLedger("amina@example.com", remote, cache, true, discardLogger())
	l.Load(ctx)

	assert.True(t, l.SpendCoins(ctx, 60))
	l.Wait()

	assert.Equal(t, 40, l.State().Ledger.Coins)
	assert.Len(t, remote.spent, 1)

	var snap progress.Snapshot
	data, err := cache.Get(ctx, "progress_amina@example.com")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, 40, snap.Ledger.Coins)
}

func TestLedger_AwardFailureKeepsOptimisticAndPersists(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	remote := &fakeProgress{
		award: func(progress.Action, int) (progress.AwardResult, error) {
			return progress.AwardResult{}, errUnreachable
		},
	}
	l := NewLedger("amina@example.com", remote, cache, true, discardLogger())

	l.AddCoins(ctx, 15, progress.ActionNote)
	l.Wait()

	s := l.State()
	assert.Equal(t, 15, s.Ledger.Coins)
	assert.Equal(t, 0, s.Pending)

	// следующий запуск без сервера поднимает сохраненный снимок
	remote.loadErr = errUnreachable
	restored := NewLedger("amina@example.com", remote, cache, true, discardLogger()).Load(ctx)
	assert.Equal(t, SourceCache, restored.Source)
	assert.Equal(t, 15, restored.Ledger.Coins)
	assert.Equal(t, 15, restored.Ledger.XP)
	assert.Equal(t, 1, restored.Ledger.TotalActions)
}

func TestLedger_LoadFallsBackToZero(t *testing.T) {
	remote := &fakeProgress{loadErr: &RemoteError{Kind: KindRejected, Op: "load progress", Status: 401, Err: errors.New("Unauthorized")}}
	l := NewLedger("amina@example.com", remote, NewMemoryCache(), true, discardLogger())

	s := l.Load(context.Background())
	assert.Equal(t, SourceCache, s.Source)
	assert.Equal(t, progress.NewLedger(0), s.Ledger)
	assert.Empty(t, s.Achievements)
	assert.False(t, s.DailyBonus)
}

func TestLedger_LoadReplacesStateAndAcknowledgesDailyBonus(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	unlocked := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	remote := &fakeProgress{
		snapshot: progress.Snapshot{
			Ledger:            serverLedger(210, 200, 12),
			Achievements:      []progress.Achievement{{Code: "first_step", UnlockedAt: unlocked}},
			DailyBonusGranted: true,
		},
	}
	l := NewLedger("amina@example.com", remote, cache, true, discardLogger())

	var seen []State
	l.OnChange(func(s State) { seen = append(seen, s) })

	s := l.Load(ctx)
	assert.Equal(t, SourceRemote, s.Source)
	assert.True(t, s.DailyBonus)
	assert.Equal(t, 210, s.Ledger.Coins)
	assert.Equal(t, 3, s.Ledger.Level)
	require.Len(t, s.Achievements, 1)
	require.Len(t, seen, 1)

	var snap progress.Snapshot
	data, err := cache.Get(ctx, "progress_amina@example.com")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, 210, snap.Ledger.Coins)
	assert.False(t, snap.DailyBonusGranted)

	// повторная загрузка без бонуса сбрасывает флаг
	remote.snapshot.DailyBonusGranted = false
	assert.False(t, l.Load(ctx).DailyBonus)
}

func TestLedger_AchievementsAreDeduplicated(t *testing.T) {
	ctx := context.Background()
	remote := &fakeProgress{
		snapshot: progress.Snapshot{
			Ledger:       serverLedger(5, 5, 1),
			Achievements: []progress.Achievement{{Code: "first_step"}},
		},
		award: func(progress.Action, int) (progress.AwardResult, error) {
			return progress.AwardResult{
				Ledger:          serverLedger(10, 10, 2),
				NewAchievements: []progress.Achievement{{Code: "first_step"}, {Code: "punctual"}},
			}, nil
		},
	}
	l := NewLedger("amina@example.com", remote, NewMemoryCache(), true, discardLogger())
	l.Load(ctx)

	l.AddCoins(ctx, 5, progress.ActionPrayer)
	l.AddCoins(ctx, 5, progress.ActionPrayer)
	l.Wait()

	codes := []string{}
	for _, a := range l.State().Achievements {
		codes = append(codes, a.Code)
	}
	assert.Equal(t, []string{"first_step", "punctual"}, codes)
}

func TestLedger_DemoModePersistsWithoutNetwork(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	l := NewLedger(guestOwner, nil, cache, false, discardLogger())

	assert.Equal(t, progress.NewLedger(0), l.Load(ctx).Ledger)

	l.AddCoins(ctx, 120, progress.ActionHabit)
	assert.Equal(t, 0, l.State().Pending)
	assert.True(t, l.SpendCoins(ctx, 20))
	l.Wait()

	restored := NewLedger(guestOwner, nil, cache, false, discardLogger()).Load(ctx)
	assert.Equal(t, 100, restored.Ledger.Coins)
	assert.Equal(t, 120, restored.Ledger.XP)
	assert.Equal(t, 2, restored.Ledger.Level)
}

func TestLedger_IgnoresNonPositiveAward(t *testing.T) {
	remote := &fakeProgress{}
	l := NewLedger("amina@example.com", remote, NewMemoryCache(), true, discardLogger())

	l.AddCoins(context.Background(), 0, progress.ActionNote)
	l.AddCoins(context.Background(), -5, progress.ActionNote)
	l.Wait()

	assert.Equal(t, 0, l.State().Ledger.Coins)
	assert.Empty(t, remote.awarded)
}

func TestLedger_ReconciliationOutlivesCallerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	remote := &fakeProgress{
		release: make(chan struct{}),
		award: func(progress.Action, int) (progress.AwardResult, error) {
			return progress.AwardResult{Ledger: serverLedger(7, 7, 1)}, nil
		},
	}
	l := NewLedger("amina@example.com", remote, NewMemoryCache(), true, discardLogger())

	l.AddCoins(ctx, 7, progress.ActionGoal)
	cancel()
	close(remote.release)
	l.Wait()

	assert.Equal(t, []int{7}, remote.awarded)
	assert.Equal(t, 1, l.State().Ledger.TotalActions)
}

func TestLedger_OnChangeSeesBothUpdatePoints(t *testing.T) {
	ctx := context.Background()
	remote := &fakeProgress{
		release: make(chan struct{}),
		award: func(progress.Action, int) (progress.AwardResult, error) {
			return progress.AwardResult{Ledger: serverLedger(12, 12, 1)}, nil
		},
	}
	l := NewLedger("amina@example.com", remote, NewMemoryCache(), true, discardLogger())

	var mu sync.Mutex
	var pending []int
	l.OnChange(func(s State) {
		mu.Lock()
		defer mu.Unlock()
		pending = append(pending, s.Pending)
	})

	l.AddCoins(ctx, 10, progress.ActionShopping)
	close(remote.release)
	l.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 0}, pending)
	assert.Equal(t, 12, l.State().Ledger.Coins)
}
