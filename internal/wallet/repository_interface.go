package wallet

import (
	"context"

	"mishura/internal/user"
)

type Repository interface {
	GetBalance(ctx context.Context, telegramID int64) (*user.User, error)
	AddTransaction(ctx context.Context, telegramID, amount int64, txType, reference string) (*Transaction, error)
	GetTransactions(ctx context.Context, telegramID int64, limit, offset int) ([]Transaction, error)
}
