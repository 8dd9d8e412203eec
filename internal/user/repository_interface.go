package user

import "context"

type Repository interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (*User, error)
	GetOrCreate(ctx context.Context, profile Profile, initialBalance int64) (*User, bool, error)
	Save(ctx context.Context, profile Profile, initialBalance int64) (*User, error)
	Count(ctx context.Context) (int64, error)
}
