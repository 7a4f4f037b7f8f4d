package postgres

import (
	"context"
	"errors"
	"fmt"

	"organizer/internal/domain/record"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type RecordRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewRecordRepository(pool *pgxpool.Pool, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		pool: pool,
		log:  log.With("component", "record_repository"),
	}
}

const recordColumns = `id, user_id, kind, scope, payload, created_at, updated_at`

func (r *RecordRepository) List(ctx context.Context, userID int, filter record.Filter) ([]record.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE user_id = $1`
	args := []any{userID}
	argIndex := 2

	if filter.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", argIndex)
		args = append(args, filter.Kind)
		argIndex++
	}

	if filter.Scope != "" {
		query += fmt.Sprintf(" AND scope = $%d", argIndex)
		args = append(args, filter.Scope)
	}

	query += " ORDER BY updated_at DESC, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list records", "user_id", userID, "filter", filter, "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

func (r *RecordRepository) Get(ctx context.Context, userID int, id string) (*record.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE user_id = $1 AND id = $2`

	rec, err := r.scanRecord(r.pool.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to get record", "record_id", id, "user_id", userID, "error", err)
		return nil, fmt.Errorf("get record: %w", err)
	}

	return rec, nil
}

func (r *RecordRepository) Create(ctx context.Context, rec *record.Record) error {
	const query = `
		INSERT INTO records (id, user_id, kind, scope, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.UserID, rec.Kind, rec.Scope, rec.Payload, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: id %s already exists", record.ErrInvalidData, rec.ID)
		}
		r.log.Error("failed to create record", "user_id", rec.UserID, "kind", rec.Kind, "error", err)
		return fmt.Errorf("create record: %w", err)
	}

	return nil
}

func (r *RecordRepository) Update(ctx context.Context, rec *record.Record) error {
	const query = `
		UPDATE records
		SET payload = $1, updated_at = $2
		WHERE user_id = $3 AND id = $4`

	result, err := r.pool.Exec(ctx, query, rec.Payload, rec.UpdatedAt, rec.UserID, rec.ID)
	if err != nil {
		r.log.Error("failed to update record", "record_id", rec.ID, "user_id", rec.UserID, "error", err)
		return fmt.Errorf("update record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return record.ErrNotFound
	}

	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, userID int, id string) error {
	const query = `DELETE FROM records WHERE user_id = $1 AND id = $2`

	result, err := r.pool.Exec(ctx, query, userID, id)
	if err != nil {
		r.log.Error("failed to delete record", "record_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return record.ErrNotFound
	}

	return nil
}

func (r *RecordRepository) scanRecord(row pgx.Row) (*record.Record, error) {
	var rec record.Record
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Kind, &rec.Scope, &rec.Payload, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if rec.Payload == nil {
		rec.Payload = map[string]any{}
	}
	return &rec, nil
}

func (r *RecordRepository) scanRecords(rows pgx.Rows) ([]record.Record, error) {
	records := make([]record.Record, 0)
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}
