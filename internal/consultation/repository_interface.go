package consultation

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c *Consultation) error
	GetByID(ctx context.Context, id, userID int64) (*Consultation, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]Consultation, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
