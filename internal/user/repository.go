package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, telegram_id, username, first_name, last_name, balance, created_at, updated_at`

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, r.db.Rebind(`SELECT `+userColumns+` FROM users WHERE telegram_id = ?`), telegramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetOrCreate returns the user with the given Telegram id, inserting it with
// initialBalance first if it does not exist. The second return value reports
// whether this call created the user; concurrent callers never both see true.
func (r *SQLRepository) GetOrCreate(ctx context.Context, profile Profile, initialBalance int64) (*User, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	created, err := insertIfMissing(ctx, tx, profile, initialBalance)
	if err != nil {
		return nil, false, err
	}

	var u User
	if err := tx.GetContext(ctx, &u, tx.Rebind(`SELECT `+userColumns+` FROM users WHERE telegram_id = ?`), profile.TelegramID); err != nil {
		return nil, false, fmt.Errorf("failed to load user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return &u, created, nil
}

// Save upserts the profile. Empty names never overwrite stored ones.
func (r *SQLRepository) Save(ctx context.Context, profile Profile, initialBalance int64) (*User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := insertIfMissing(ctx, tx, profile, initialBalance); err != nil {
		return nil, err
	}

	var u User
	err = tx.QueryRowxContext(ctx, tx.Rebind(`
		UPDATE users
		SET username = COALESCE(NULLIF(?, ''), username),
		    first_name = COALESCE(NULLIF(?, ''), first_name),
		    last_name = COALESCE(NULLIF(?, ''), last_name),
		    updated_at = CURRENT_TIMESTAMP
		WHERE telegram_id = ?
		RETURNING `+userColumns),
		profile.Username, profile.FirstName, profile.LastName, profile.TelegramID,
	).StructScan(&u)
	if err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *SQLRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`)
	return n, err
}

func insertIfMissing(ctx context.Context, tx *sqlx.Tx, profile Profile, initialBalance int64) (bool, error) {
	res, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO users (telegram_id, username, first_name, last_name, balance)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (telegram_id) DO NOTHING`),
		profile.TelegramID, profile.Username, profile.FirstName, profile.LastName, initialBalance,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 || initialBalance == 0 {
		return n == 1, nil
	}

	// the starting balance is the first ledger entry
	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO balance_transactions (user_id, amount, type, reference, balance_after)
		SELECT id, CAST(? AS BIGINT), 'initial', 'registration', CAST(? AS BIGINT) FROM users WHERE telegram_id = ?`),
		initialBalance, initialBalance, profile.TelegramID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record initial balance: %w", err)
	}
	return true, nil
}
