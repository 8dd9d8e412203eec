package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mishura/internal/user"

	"github.com/jmoiron/sqlx"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrZeroAmount          = errors.New("transaction amount must not be zero")
)

type SQLRepository struct {
	db             *sqlx.DB
	users          user.Repository
	initialBalance int64
}

func NewRepository(db *sqlx.DB, users user.Repository, initialBalance int64) *SQLRepository {
	return &SQLRepository{
		db:             db,
		users:          users,
		initialBalance: initialBalance,
	}
}

// GetBalance returns the user with its current balance, registering unknown
// users with the initial balance.
func (r *SQLRepository) GetBalance(ctx context.Context, telegramID int64) (*user.User, error) {
	u, _, err := r.users.GetOrCreate(ctx, user.WebAppProfile(telegramID), r.initialBalance)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *SQLRepository) AddTransaction(ctx context.Context, telegramID, amount int64, txType, reference string) (*Transaction, error) {
	u, err := r.GetBalance(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := ApplyTx(ctx, tx, u.ID, amount, txType, reference)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// ApplyTx changes the balance of userID by amount inside tx and records the
// ledger entry. The update is conditional so the balance never goes negative.
func ApplyTx(ctx context.Context, tx *sqlx.Tx, userID, amount int64, txType, reference string) (*Transaction, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}

	var balance int64
	err := tx.GetContext(ctx, &balance, tx.Rebind(`
		UPDATE users
		SET balance = balance + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND balance + ? >= 0
		RETURNING balance`),
		amount, userID, amount,
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to update balance: %w", err)
		}

		var exists bool
		if err := tx.GetContext(ctx, &exists, tx.Rebind(`SELECT COUNT(*) > 0 FROM users WHERE id = ?`), userID); err != nil {
			return nil, err
		}
		if !exists {
			return nil, user.ErrUserNotFound
		}
		return nil, ErrInsufficientBalance
	}

	var t Transaction
	err = tx.QueryRowxContext(ctx, tx.Rebind(`
		INSERT INTO balance_transactions (user_id, amount, type, reference, balance_after)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, user_id, amount, type, reference, balance_after, created_at`),
		userID, amount, txType, reference, balance,
	).StructScan(&t)
	if err != nil {
		return nil, fmt.Errorf("failed to record balance transaction: %w", err)
	}

	return &t, nil
}

func (r *SQLRepository) GetTransactions(ctx context.Context, telegramID int64, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	u, err := r.users.FindByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return []Transaction{}, nil
		}
		return nil, err
	}

	txs := []Transaction{}
	err = r.db.SelectContext(ctx, &txs, r.db.Rebind(`
		SELECT id, user_id, amount, type, reference, balance_after, created_at
		FROM balance_transactions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`),
		u.ID, limit, offset,
	)
	if err != nil {
		return nil, err
	}

	return txs, nil
}
