package client

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"

	"organizer/internal/domain/progress"

	"golang.org/x/exp/slog"
)

// State - наблюдаемое состояние счетчика наград на клиенте
type State struct {
	Ledger       progress.Ledger
	Achievements []progress.Achievement
	// DailyBonus - сервер начислил ежедневный бонус при последней загрузке
	DailyBonus bool
	// Pending - число начислений, еще не сверенных с сервером
	Pending int
	// Source - откуда получено состояние при последней загрузке
	Source Source
}

func (s State) clone() State {
	out := s
	out.Achievements = append([]progress.Achievement(nil), s.Achievements...)
	return out
}

// Ledger - счетчик наград с оптимистичным обновлением и сверкой с сервером.
// Ответы сервера применяются в порядке их получения.
type Ledger struct {
	owner         string
	remote        ProgressRemote
	cache         Cache
	remoteEnabled bool
	log           *slog.Logger
	now           func() time.Time

	mu          sync.Mutex
	state       State
	subscribers []func(State)

	wg sync.WaitGroup
}

func NewLedger(owner string, remote ProgressRemote, cache Cache, remoteEnabled bool, log *slog.Logger) *Ledger {
	return &Ledger{
		owner:         owner,
		remote:        remote,
		cache:         cache,
		remoteEnabled: remoteEnabled && remote != nil,
		log:           log.With("component", "ledger", "owner", owner),
		now:           time.Now,
		state:         State{Ledger: progress.NewLedger(0), Source: SourceCache},
	}
}

// OnChange подписывает fn на каждое изменение состояния
func (l *Ledger) OnChange(fn func(State)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, fn)
}

// State возвращает копию текущего состояния
func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.clone()
}

// Wait блокируется до завершения всех фоновых запросов к серверу
func (l *Ledger) Wait() {
	l.wg.Wait()
}

// Load загружает счетчик с сервера, при ошибке берет снимок из кэша или нулевой счетчик
func (l *Ledger) Load(ctx context.Context) State {
	res := fetchWithFallback(ctx, l.remoteEnabled,
		func(ctx context.Context) (progress.Snapshot, error) {
			return l.remote.LoadProgress(ctx)
		},
		l.cachedSnapshot,
	)
	if res.RemoteErr != nil {
		l.log.Warn("Не удалось загрузить прогресс с сервера, используем локальный снимок",
			"kind_of_error", KindOf(res.RemoteErr).String(), "error", res.RemoteErr)
	}

	snap := res.Value
	snap.Ledger.Recalculate()

	if res.Source == SourceRemote && snap.DailyBonusGranted {
		l.log.Info("Начислен ежедневный бонус", "coins", snap.Ledger.Coins)
	}

	l.mu.Lock()
	l.state.Ledger = snap.Ledger
	l.state.Achievements = mergeAchievements(nil, snap.Achievements)
	l.state.DailyBonus = res.Source == SourceRemote && snap.DailyBonusGranted
	l.state.Source = res.Source
	current := l.state.clone()
	l.mu.Unlock()

	if res.Source == SourceRemote {
		l.persist(ctx, current)
	}
	l.notify(current)

	return current
}

// AddCoins начисляет amount монет и опыта сразу и сверяет результат с сервером в фоне
func (l *Ledger) AddCoins(ctx context.Context, amount int, action progress.Action) {
	if amount <= 0 {
		l.log.Debug("Пропуск начисления с неположительной суммой", "amount", amount, "action", action)
		return
	}

	l.mu.Lock()
	l.state.Ledger.Award(amount, l.now().UTC())
	if l.remoteEnabled {
		l.state.Pending++
	}
	optimistic := l.state.clone()
	l.mu.Unlock()

	l.notify(optimistic)

	if !l.remoteEnabled {
		l.persist(ctx, optimistic)
		return
	}

	bg := context.WithoutCancel(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.reconcileAward(bg, action, amount)
	}()
}

func (l *Ledger) reconcileAward(ctx context.Context, action progress.Action, amount int) {
	res, err := l.remote.Award(ctx, action, amount)

	l.mu.Lock()
	l.state.Pending--
	if err == nil {
		res.Ledger.Recalculate()
		l.state.Ledger = res.Ledger
		l.state.Achievements = mergeAchievements(l.state.Achievements, res.NewAchievements)
	}
	current := l.state.clone()
	l.mu.Unlock()

	if err != nil {
		l.log.Warn("Не удалось синхронизировать начисление, сохраняем локальное значение",
			"action", action, "amount", amount, "kind_of_error", KindOf(err).String(), "error", err)
	} else {
		for _, a := range res.NewAchievements {
			l.log.Info("Новое достижение", "code", a.Code, "name", a.Name)
		}
	}

	l.persist(ctx, current)
	l.notify(current)
}

// SpendCoins списывает amount монет, если их хватает. Сервер уведомляется в фоне,
// ошибка уведомления только логируется.
func (l *Ledger) SpendCoins(ctx context.Context, amount int) bool {
	l.mu.Lock()
	if err := l.state.Ledger.Spend(amount); err != nil {
		l.mu.Unlock()
		l.log.Debug("Списание отклонено", "amount", amount, "error", err)
		return false
	}
	current := l.state.clone()
	l.mu.Unlock()

	if amount == 0 {
		return true
	}

	l.notify(current)

	if !l.remoteEnabled {
		l.persist(ctx, current)
		return true
	}

	bg := context.WithoutCancel(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if _, err := l.remote.Spend(bg, amount); err != nil {
			l.log.Warn("Не удалось уведомить сервер о списании",
				"amount", amount, "kind_of_error", KindOf(err).String(), "error", err)
			l.persist(bg, l.State())
		}
	}()

	return true
}

func (l *Ledger) key() string {
	return "progress_" + l.owner
}

func (l *Ledger) cachedSnapshot(ctx context.Context) progress.Snapshot {
	zero := progress.Snapshot{Ledger: progress.NewLedger(0), Achievements: []progress.Achievement{}}

	data, err := l.cache.Get(ctx, l.key())
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			l.log.Error("Ошибка чтения снимка прогресса", "error", err)
		}
		return zero
	}

	var snap progress.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		l.log.Warn("Поврежденный снимок прогресса, начинаем с нуля", "error", err)
		return zero
	}

	return snap
}

func (l *Ledger) persist(ctx context.Context, s State) {
	data, err := json.Marshal(progress.Snapshot{Ledger: s.Ledger, Achievements: s.Achievements})
	if err != nil {
		l.log.Error("Ошибка сериализации снимка прогресса", "error", err)
		return
	}
	if err := l.cache.Put(ctx, l.key(), data); err != nil {
		l.log.Error("Не удалось сохранить снимок прогресса", "error", err)
	}
}

func (l *Ledger) notify(s State) {
	l.mu.Lock()
	subscribers := slices.Clone(l.subscribers)
	l.mu.Unlock()

	for _, fn := range subscribers {
		fn(s.clone())
	}
}

// mergeAchievements дописывает к have новые достижения, не повторяя коды
func mergeAchievements(have, added []progress.Achievement) []progress.Achievement {
	seen := make(map[string]struct{}, len(have)+len(added))
	out := make([]progress.Achievement, 0, len(have)+len(added))
	for _, list := range [][]progress.Achievement{have, added} {
		for _, a := range list {
			if _, ok := seen[a.Code]; ok {
				continue
			}
			seen[a.Code] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}
