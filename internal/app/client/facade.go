package client

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"organizer/internal/domain/record"

	"github.com/oklog/ulid/v2"
	"golang.org/x/exp/slog"
)

// Source - уровень хранилища, обслуживший вызов
type Source int

const (
	SourceRemote Source = iota + 1
	SourceCache
)

func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceCache:
		return "cache"
	default:
		return "unknown"
	}
}

// Result - значение вместе с источником и ошибкой удаленного вызова, если она была
type Result[T any] struct {
	Value     T
	Source    Source
	RemoteErr error
}

// Fallback сообщает, что результат получен из локального кэша после сбоя сервера
func (r Result[T]) Fallback() bool {
	return r.Source == SourceCache && r.RemoteErr != nil
}

// fetchWithFallback пробует remote, при ошибке или выключенном сервере читает local
func fetchWithFallback[T any](
	ctx context.Context,
	remoteEnabled bool,
	remote func(context.Context) (T, error),
	local func(context.Context) T,
) Result[T] {
	if !remoteEnabled {
		return Result[T]{Value: local(ctx), Source: SourceCache}
	}

	value, err := remote(ctx)
	if err != nil {
		return Result[T]{Value: local(ctx), Source: SourceCache, RemoteErr: err}
	}

	return Result[T]{Value: value, Source: SourceRemote}
}

// Facade - единая точка чтения и записи записей одного вида:
// сервер, если он доступен, и всегда локальный кэш
type Facade struct {
	kind          record.Kind
	remote        RecordRemote
	cache         Cache
	remoteEnabled bool
	log           *slog.Logger

	now   func() time.Time
	newID func() string

	// mu защищает чтение-изменение-запись ключей кэша внутри процесса
	mu sync.Mutex
}

func NewFacade(kind record.Kind, remote RecordRemote, cache Cache, remoteEnabled bool, log *slog.Logger) *Facade {
	return &Facade{
		kind:          kind,
		remote:        remote,
		cache:         cache,
		remoteEnabled: remoteEnabled && remote != nil,
		log:           log.With("component", "facade", "kind", string(kind)),
		now:           time.Now,
		newID:         func() string { return ulid.Make().String() },
	}
}

func (f *Facade) Kind() record.Kind {
	return f.kind
}

// List возвращает записи области scope. Ответ сервера не перезаписывает кэш.
func (f *Facade) List(ctx context.Context, scope string) Result[[]record.Record] {
	res := fetchWithFallback(ctx, f.remoteEnabled,
		func(ctx context.Context) ([]record.Record, error) {
			return f.remote.ListRecords(ctx, f.kind, scope)
		},
		func(ctx context.Context) []record.Record {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.readScope(ctx, scope)
		},
	)

	if res.RemoteErr != nil {
		f.log.Warn("Сервер недоступен, читаем локальный кэш",
			"scope", scope, "kind_of_error", KindOf(res.RemoteErr).String(), "error", res.RemoteErr)
	}

	return res
}

// Save создает или обновляет запись на сервере и в любом случае кладет ее в кэш
func (f *Facade) Save(ctx context.Context, rec record.Record) Result[record.Record] {
	rec.Kind = f.kind
	res := Result[record.Record]{Source: SourceCache}

	if f.remoteEnabled {
		saved, err := f.saveRemote(ctx, rec)
		if err != nil {
			res.RemoteErr = err
			f.log.Warn("Не удалось сохранить запись на сервере, сохраняем локально",
				"id", rec.ID, "scope", rec.Scope, "kind_of_error", KindOf(err).String(), "error", err)
		} else {
			rec = mergeCanonical(rec, saved)
			res.Source = SourceRemote
		}
	}

	if res.Source == SourceCache {
		rec = f.fillLocalDefaults(rec)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.locate(ctx, rec.ID); ok && existing != rec.Scope {
		f.log.Debug("Запись остается в исходной области", "id", rec.ID, "scope", existing, "requested", rec.Scope)
		rec.Scope = existing
	}

	records := f.readScope(ctx, rec.Scope)
	replaced := false
	for i := range records {
		if records[i].ID == rec.ID {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}

	if err := f.writeScope(ctx, rec.Scope, records); err != nil {
		f.log.Error("Не удалось записать кэш", "scope", rec.Scope, "error", err)
	}

	res.Value = rec
	return res
}

// Delete удаляет запись на сервере и из первой области кэша, где она найдена
func (f *Facade) Delete(ctx context.Context, id string) bool {
	remoteOK := false
	if f.remoteEnabled {
		if err := f.remote.DeleteRecord(ctx, id); err != nil {
			f.log.Warn("Не удалось удалить запись на сервере",
				"id", id, "kind_of_error", KindOf(err).String(), "error", err)
		} else {
			remoteOK = true
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	removed := false
	keys, err := f.cache.Keys(ctx, f.prefix())
	if err != nil {
		f.log.Error("Не удалось получить ключи кэша", "error", err)
		return remoteOK
	}

	for _, key := range keys {
		scope := strings.TrimPrefix(key, f.prefix())
		records := f.readScope(ctx, scope)

		kept := records[:0]
		for _, r := range records {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		if len(kept) == len(records) {
			continue
		}

		if err := f.writeScope(ctx, scope, kept); err != nil {
			f.log.Error("Не удалось записать кэш", "scope", scope, "error", err)
			break
		}
		removed = true
		break
	}

	return remoteOK || removed
}

func (f *Facade) saveRemote(ctx context.Context, rec record.Record) (record.Record, error) {
	if rec.ID == "" {
		return f.remote.CreateRecord(ctx, rec)
	}
	return f.remote.SaveRecord(ctx, rec)
}

// mergeCanonical переносит в запись поля, которые назначает сервер
func mergeCanonical(rec, saved record.Record) record.Record {
	rec.ID = saved.ID
	rec.CreatedAt = saved.CreatedAt
	rec.UpdatedAt = saved.UpdatedAt
	if saved.Payload != nil {
		rec.Payload = saved.Payload
	}
	return rec
}

func (f *Facade) fillLocalDefaults(rec record.Record) record.Record {
	now := f.now().UTC()
	if rec.ID == "" {
		rec.ID = f.newID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if now.After(rec.UpdatedAt) {
		rec.UpdatedAt = now
	}
	if rec.Payload == nil {
		rec.Payload = map[string]any{}
	}
	return rec
}

// locate ищет область кэша, в которой уже лежит запись с id
func (f *Facade) locate(ctx context.Context, id string) (string, bool) {
	keys, err := f.cache.Keys(ctx, f.prefix())
	if err != nil {
		f.log.Error("Не удалось получить ключи кэша", "error", err)
		return "", false
	}

	for _, key := range keys {
		scope := strings.TrimPrefix(key, f.prefix())
		for _, r := range f.readScope(ctx, scope) {
			if r.ID == id {
				return scope, true
			}
		}
	}
	return "", false
}

func (f *Facade) prefix() string {
	return string(f.kind) + "_"
}

func (f *Facade) key(scope string) string {
	return f.prefix() + scope
}

// readScope читает область кэша; отсутствующий или поврежденный ключ читается как пустой
func (f *Facade) readScope(ctx context.Context, scope string) []record.Record {
	data, err := f.cache.Get(ctx, f.key(scope))
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			f.log.Error("Ошибка чтения кэша", "key", f.key(scope), "error", err)
		}
		return []record.Record{}
	}

	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		f.log.Warn("Поврежденные данные в кэше, считаем область пустой", "key", f.key(scope), "error", err)
		return []record.Record{}
	}
	if records == nil {
		records = []record.Record{}
	}

	return records
}

func (f *Facade) writeScope(ctx context.Context, scope string, records []record.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return f.cache.Put(ctx, f.key(scope), data)
}
