package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	gosync "sync"

	"golang.org/x/exp/slog"

	"organizer/internal/app/client/config"
	"organizer/internal/domain/record"
	"organizer/internal/domain/user"
)

const guestOwner = "guest"

// Session - данные входа, сохраняемые между запусками
type Session struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// App собирает фасады записей, счетчик наград и локальный кэш.
// Создается один раз на процесс и передается потребителям.
type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
	cache      Cache
	closeCache func() error

	facades map[record.Kind]*Facade
	ledger  *Ledger
	session Session
	mu      gosync.RWMutex
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl := NewHTTPClient(cfg, log)

	var cache Cache
	closeCache := func() error { return nil }
	sqliteCache, err := NewSQLiteCache(cfg.CachePath)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		cache = NewMemoryCache()
	} else {
		cache = sqliteCache
		closeCache = sqliteCache.Close
	}

	app := &App{
		config:     cfg,
		log:        log,
		httpClient: httpCl,
		cache:      cache,
		closeCache: closeCache,
	}

	session, err := app.loadSession()
	if err != nil {
		log.Warn("Не удалось загрузить сессию", "error", err)
	}
	if session.Token != "" {
		httpCl.SetToken(session.Token)
		log.Debug("Токен загружен из файла")
	}
	app.session = session

	app.facades = make(map[record.Kind]*Facade, len(record.Kinds()))
	for _, kind := range record.Kinds() {
		app.facades[kind] = NewFacade(kind, httpCl, cache, app.RemoteEnabled(), log)
	}
	app.ledger = NewLedger(ownerOf(session), httpCl, cache, app.RemoteEnabled(), log)

	return app, nil
}

// RemoteEnabled - false в демо-режиме, определяется один раз из конфигурации
func (a *App) RemoteEnabled() bool {
	return !a.config.DemoMode
}

// Records возвращает фасад для вида kind
func (a *App) Records(kind record.Kind) (*Facade, error) {
	f, ok := a.facades[kind]
	if !ok {
		return nil, fmt.Errorf("неизвестный вид записи: %s", kind)
	}
	return f, nil
}

func (a *App) Ledger() *Ledger {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ledger
}

// Close дожидается фоновых запросов счетчика и закрывает кэш
func (a *App) Close() error {
	a.Ledger().Wait()
	return a.closeCache()
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.httpClient.HealthCheck(ctx)
}

func (a *App) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.Token != ""
}

func (a *App) Session() Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *App) Register(ctx context.Context, c user.Credentials) error {
	return a.httpClient.Register(ctx, c)
}

// Login получает токен и сохраняет сессию; счетчик переключается на нового владельца
func (a *App) Login(ctx context.Context, c user.Credentials) error {
	token, err := a.httpClient.Login(ctx, c)
	if err != nil {
		return err
	}

	session := Session{Email: c.Email, Token: token}
	if err := a.saveSession(session); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	a.mu.Lock()
	previous := a.ledger
	a.session = session
	a.ledger = NewLedger(ownerOf(session), a.httpClient, a.cache, a.RemoteEnabled(), a.log)
	a.mu.Unlock()

	previous.Wait()
	return nil
}

// Logout удаляет сохраненную сессию; счетчик возвращается к гостевому снимку
func (a *App) Logout() error {
	if err := os.Remove(a.config.TokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}

	a.httpClient.SetToken("")
	a.mu.Lock()
	previous := a.ledger
	a.session = Session{}
	a.ledger = NewLedger(guestOwner, a.httpClient, a.cache, a.RemoteEnabled(), a.log)
	a.mu.Unlock()

	previous.Wait()
	return nil
}

func (a *App) Verify(ctx context.Context, token string) error {
	return a.httpClient.Verify(ctx, token)
}

func (a *App) RequestPasswordReset(ctx context.Context, email string) error {
	return a.httpClient.RequestPasswordReset(ctx, email)
}

func (a *App) ResetPassword(ctx context.Context, token, password string) error {
	return a.httpClient.ResetPassword(ctx, token, password)
}

func (a *App) loadSession() (Session, error) {
	data, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (a *App) saveSession(session Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(a.config.TokenPath, data, 0600)
}

func ownerOf(s Session) string {
	if s.Email == "" {
		return guestOwner
	}
	return s.Email
}
