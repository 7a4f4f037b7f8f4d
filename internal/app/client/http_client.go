package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"organizer/internal/app/client/config"
	"organizer/internal/domain/progress"
	"organizer/internal/domain/record"
	"organizer/internal/domain/user"

	"golang.org/x/exp/slog"
)

// RecordRemote - удаленное хранилище записей
type RecordRemote interface {
	ListRecords(ctx context.Context, kind record.Kind, scope string) ([]record.Record, error)
	CreateRecord(ctx context.Context, rec record.Record) (record.Record, error)
	SaveRecord(ctx context.Context, rec record.Record) (record.Record, error)
	DeleteRecord(ctx context.Context, id string) error
}

// ProgressRemote - серверный счетчик наград
type ProgressRemote interface {
	LoadProgress(ctx context.Context) (progress.Snapshot, error)
	Award(ctx context.Context, action progress.Action, amount int) (progress.AwardResult, error)
	Spend(ctx context.Context, amount int) (progress.Ledger, error)
}

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &httpClient{
		client:    client,
		log:       log.With("component", "http_client"),
		baseURL:   cfg.BaseURL(),
		userAgent: "Organizer-Client/1.0",
	}
}

// SetToken устанавливает токен аутентификации
func (h *httpClient) SetToken(token string) {
	h.token = token
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	return h.call(ctx, "health", http.MethodGet, "/api/v1/health", nil, nil)
}

type recordBody struct {
	Kind    record.Kind    `json:"kind"`
	Scope   string         `json:"scope"`
	Payload map[string]any `json:"payload,omitempty"`
}

type recordEnvelope struct {
	Record *record.Record `json:"record"`
}

func (h *httpClient) ListRecords(ctx context.Context, kind record.Kind, scope string) ([]record.Record, error) {
	q := url.Values{}
	q.Set("kind", string(kind))
	if scope != "" {
		q.Set("scope", scope)
	}

	var resp struct {
		Records []record.Record `json:"records"`
	}
	if err := h.call(ctx, "list records", http.MethodGet, "/api/v1/records?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Records == nil {
		resp.Records = []record.Record{}
	}
	return resp.Records, nil
}

func (h *httpClient) CreateRecord(ctx context.Context, rec record.Record) (record.Record, error) {
	var resp recordEnvelope
	body := recordBody{Kind: rec.Kind, Scope: rec.Scope, Payload: rec.Payload}
	if err := h.call(ctx, "create record", http.MethodPost, "/api/v1/records", body, &resp); err != nil {
		return record.Record{}, err
	}
	return h.unwrapRecord("create record", resp)
}

func (h *httpClient) SaveRecord(ctx context.Context, rec record.Record) (record.Record, error) {
	var resp recordEnvelope
	body := recordBody{Kind: rec.Kind, Scope: rec.Scope, Payload: rec.Payload}
	if err := h.call(ctx, "save record", http.MethodPut, "/api/v1/records/"+url.PathEscape(rec.ID), body, &resp); err != nil {
		return record.Record{}, err
	}
	return h.unwrapRecord("save record", resp)
}

func (h *httpClient) DeleteRecord(ctx context.Context, id string) error {
	return h.call(ctx, "delete record", http.MethodDelete, "/api/v1/records/"+url.PathEscape(id), nil, nil)
}

func (h *httpClient) unwrapRecord(op string, resp recordEnvelope) (record.Record, error) {
	if resp.Record == nil || resp.Record.ID == "" {
		return record.Record{}, &RemoteError{Kind: KindMalformed, Op: op, Err: errors.New("в ответе нет записи")}
	}
	return *resp.Record, nil
}

func (h *httpClient) LoadProgress(ctx context.Context) (progress.Snapshot, error) {
	var snap progress.Snapshot
	var resp struct {
		Ledger            *progress.Ledger       `json:"ledger"`
		Achievements      []progress.Achievement `json:"achievements"`
		DailyBonusGranted bool                   `json:"daily_bonus_granted"`
	}
	if err := h.call(ctx, "load progress", http.MethodGet, "/api/v1/progress", nil, &resp); err != nil {
		return snap, err
	}
	if resp.Ledger == nil {
		return snap, &RemoteError{Kind: KindMalformed, Op: "load progress", Err: errors.New("в ответе нет счетчика")}
	}

	snap.Ledger = *resp.Ledger
	snap.Achievements = resp.Achievements
	snap.DailyBonusGranted = resp.DailyBonusGranted
	return snap, nil
}

func (h *httpClient) Award(ctx context.Context, action progress.Action, amount int) (progress.AwardResult, error) {
	req := struct {
		Action progress.Action `json:"action"`
		Amount int             `json:"amount"`
	}{Action: action, Amount: amount}

	var resp struct {
		Ledger          *progress.Ledger       `json:"ledger"`
		NewAchievements []progress.Achievement `json:"new_achievements"`
	}
	if err := h.call(ctx, "award", http.MethodPost, "/api/v1/progress/award", req, &resp); err != nil {
		return progress.AwardResult{}, err
	}
	if resp.Ledger == nil {
		return progress.AwardResult{}, &RemoteError{Kind: KindMalformed, Op: "award", Err: errors.New("в ответе нет счетчика")}
	}
	return progress.AwardResult{Ledger: *resp.Ledger, NewAchievements: resp.NewAchievements}, nil
}

func (h *httpClient) Spend(ctx context.Context, amount int) (progress.Ledger, error) {
	req := struct {
		Amount int `json:"amount"`
	}{Amount: amount}

	var resp struct {
		Ledger progress.Ledger `json:"ledger"`
	}
	if err := h.call(ctx, "spend", http.MethodPost, "/api/v1/progress/spend", req, &resp); err != nil {
		return progress.Ledger{}, err
	}
	return resp.Ledger, nil
}

func (h *httpClient) Register(ctx context.Context, c user.Credentials) error {
	return h.call(ctx, "register", http.MethodPost, "/api/v1/auth/register", c, nil)
}

func (h *httpClient) Login(ctx context.Context, c user.Credentials) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := h.call(ctx, "login", http.MethodPost, "/api/v1/auth/login", c, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &RemoteError{Kind: KindMalformed, Op: "login", Err: errors.New("сервер не вернул токен")}
	}

	h.SetToken(resp.Token)
	return resp.Token, nil
}

func (h *httpClient) Verify(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	return h.call(ctx, "verify", http.MethodPost, "/api/v1/auth/verify", body, nil)
}

func (h *httpClient) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return h.call(ctx, "password reset", http.MethodPost, "/api/v1/auth/password-reset", body, nil)
}

func (h *httpClient) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	return h.call(ctx, "password reset confirm", http.MethodPost, "/api/v1/auth/password-reset/confirm", body, nil)
}

func (h *httpClient) call(ctx context.Context, op, method, path string, body, result any) error {
	resp, err := h.doRequest(ctx, method, path, body)
	if err != nil {
		return &RemoteError{Kind: KindUnreachable, Op: op, Err: err}
	}
	return h.parseResponse(op, resp, result)
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("Отправка запроса", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

// parseResponse разбирает ответ сервера; ошибкой считаются статус >= 400,
// поле error или status "Error" в теле и невалидный JSON
func (h *httpClient) parseResponse(op string, resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Kind: KindUnreachable, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("ошибка чтения ответа: %w", err)}
	}

	h.log.Debug("Получен ответ", "status", resp.StatusCode, "body", string(body))

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
			Title  string `json:"title"`
		}
		msg := fmt.Sprintf("статус %d", resp.StatusCode)
		if err := json.Unmarshal(body, &errResp); err == nil {
			switch {
			case errResp.Detail != "":
				msg = errResp.Detail
			case errResp.Error != "":
				msg = errResp.Error
			case errResp.Title != "":
				msg = errResp.Title
			}
		}
		return &RemoteError{Kind: KindRejected, Op: op, Status: resp.StatusCode, Err: errors.New(msg)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		if result != nil {
			return &RemoteError{Kind: KindMalformed, Op: op, Status: resp.StatusCode, Err: errors.New("пустой ответ")}
		}
		return nil
	}

	var marker struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &marker); err != nil {
		return &RemoteError{Kind: KindMalformed, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("ошибка парсинга ответа: %w", err)}
	}
	if marker.Error != "" || marker.Status == "Error" {
		return &RemoteError{Kind: KindRejected, Op: op, Status: resp.StatusCode, Err: errors.New(marker.Error)}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return &RemoteError{Kind: KindMalformed, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("ошибка парсинга ответа: %w", err)}
		}
	}

	return nil
}
