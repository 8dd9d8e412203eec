package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mishura/internal/wallet"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound         = errors.New("payment not found")
	ErrAlreadyProcessed = errors.New("payment already processed")
)

const paymentColumns = `id, user_id, plan_id, amount, currency, stcoins, status, gateway,
	gateway_payment_id, confirmation_url, created_at, updated_at`

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, p *Payment) error {
	return r.db.QueryRowxContext(ctx, r.db.Rebind(`
		INSERT INTO payments (id, user_id, plan_id, amount, currency, stcoins, status, gateway)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at, updated_at`),
		p.ID, p.UserID, p.PlanID, p.Amount, p.Currency, p.STCoins, p.Status, p.Gateway,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *SQLRepository) AttachGateway(ctx context.Context, id, gatewayPaymentID, confirmationURL string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE payments
		SET gateway_payment_id = ?, confirmation_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`),
		gatewayPaymentID, confirmationURL, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
}

func (r *SQLRepository) GetByGatewayID(ctx context.Context, gatewayPaymentID string) (*Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE gateway_payment_id = ?`, gatewayPaymentID)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg interface{}) (*Payment, error) {
	var p Payment
	if err := r.db.GetContext(ctx, &p, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// MarkCanceled cancels a pending payment. It reports false when the payment
// was not pending.
func (r *SQLRepository) MarkCanceled(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE payments
		SET status = 'canceled', updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'pending'`),
		id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ConfirmAndCredit moves a pending payment to succeeded and credits its
// STCoins in the same transaction. A second call for the same payment returns
// ErrAlreadyProcessed and credits nothing.
func (r *SQLRepository) ConfirmAndCredit(ctx context.Context, gatewayPaymentID string) (*Payment, *wallet.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	var p Payment
	err = tx.QueryRowxContext(ctx, tx.Rebind(`
		UPDATE payments
		SET status = 'succeeded', updated_at = CURRENT_TIMESTAMP
		WHERE gateway_payment_id = ? AND status = 'pending'
		RETURNING `+paymentColumns),
		gatewayPaymentID,
	).StructScan(&p)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("failed to confirm payment: %w", err)
		}

		var exists bool
		if err := tx.GetContext(ctx, &exists, tx.Rebind(`SELECT COUNT(*) > 0 FROM payments WHERE gateway_payment_id = ?`), gatewayPaymentID); err != nil {
			return nil, nil, err
		}
		if !exists {
			return nil, nil, ErrNotFound
		}
		return nil, nil, ErrAlreadyProcessed
	}

	credit, err := wallet.ApplyTx(ctx, tx, p.UserID, p.STCoins, wallet.TxTopUp, "payment:"+p.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to credit balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return &p, credit, nil
}

func (r *SQLRepository) CountSucceeded(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM payments WHERE status = 'succeeded'`)
	return n, err
}
