package payment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"mishura/internal/wallet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPaymentID = "3f1c1a8e-6a55-4a3e-9b43-2f5d1c0e7a10"

var paymentRowColumns = []string{
	"id", "user_id", "plan_id", "amount", "currency", "stcoins", "status", "gateway",
	"gateway_payment_id", "confirmation_url", "created_at", "updated_at",
}

func setupPaymentMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func paymentRow(status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(paymentRowColumns).AddRow(
		testPaymentID, 5, "premium", 30000, "RUB", 250, status, "yookassa",
		"yk_1", "https://yoomoney.ru/checkout/yk_1", now, now,
	)
}

func TestCreate(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments (id, user_id, plan_id, amount, currency, stcoins, status, gateway) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")).
		WithArgs(testPaymentID, int64(5), "premium", int64(30000), "RUB", int64(250), StatusPending, "yookassa").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	p := &Payment{
		ID: testPaymentID, UserID: 5, PlanID: "premium", Amount: 30000,
		Currency: "RUB", STCoins: 250, Status: StatusPending, Gateway: "yookassa",
	}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.False(t, p.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachGateway_NotFound(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET gateway_payment_id = ?, confirmation_url = ?")).
		WithArgs("yk_1", "https://pay", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AttachGateway(context.Background(), "missing", "yk_1", "https://pay")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByGatewayID(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE gateway_payment_id = ?")).
		WithArgs("yk_1").
		WillReturnRows(paymentRow(StatusPending))

	p, err := repo.GetByGatewayID(context.Background(), "yk_1")
	require.NoError(t, err)
	assert.Equal(t, testPaymentID, p.ID)
	require.NotNil(t, p.GatewayPaymentID)
	assert.Equal(t, "yk_1", *p.GatewayPaymentID)
	assert.Equal(t, int64(250), p.STCoins)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE id = ?")).
		WithArgs(testPaymentID).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))

	_, err := repo.GetByID(context.Background(), testPaymentID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkCanceled(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET status = 'canceled', updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = 'pending'")).
		WithArgs(testPaymentID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET status = 'canceled'")).
		WithArgs(testPaymentID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err := repo.MarkCanceled(context.Background(), testPaymentID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkCanceled(context.Background(), testPaymentID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmAndCredit(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE payments SET status = 'succeeded', updated_at = CURRENT_TIMESTAMP WHERE gateway_payment_id = ? AND status = 'pending' RETURNING")).
		WithArgs("yk_1").
		WillReturnRows(paymentRow(StatusSucceeded))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET balance = balance + ?")).
		WithArgs(int64(250), int64(5), int64(250)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(450))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO balance_transactions")).
		WithArgs(int64(5), int64(250), wallet.TxTopUp, "payment:"+testPaymentID, int64(450)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "type", "reference", "balance_after", "created_at"}).
			AddRow(1, 5, 250, wallet.TxTopUp, "payment:"+testPaymentID, 450, time.Now()))
	mock.ExpectCommit()

	p, credit, err := repo.ConfirmAndCredit(context.Background(), "yk_1")
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, p.Status)
	assert.Equal(t, int64(450), credit.BalanceAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmAndCredit_Replay(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE payments SET status = 'succeeded'")).
		WithArgs("yk_1").
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) > 0 FROM payments WHERE gateway_payment_id = ?")).
		WithArgs("yk_1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, _, err := repo.ConfirmAndCredit(context.Background(), "yk_1")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmAndCredit_Unknown(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE payments SET status = 'succeeded'")).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) > 0 FROM payments")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, _, err := repo.ConfirmAndCredit(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountSucceeded(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM payments WHERE status = 'succeeded'")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountSucceeded(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
