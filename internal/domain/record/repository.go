package record

import (
	"context"
)

type Repository interface {
	List(ctx context.Context, userID int, filter Filter) ([]Record, error)
	Get(ctx context.Context, userID int, id string) (*Record, error)
	Create(ctx context.Context, rec *Record) error
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, userID int, id string) error
}
