package wallet

import (
	"context"
	"regexp"
	"testing"
	"time"

	"mishura/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) FindByTelegramID(ctx context.Context, telegramID int64) (*user.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUsers) GetOrCreate(ctx context.Context, profile user.Profile, initialBalance int64) (*user.User, bool, error) {
	args := m.Called(ctx, profile, initialBalance)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*user.User), args.Bool(1), args.Error(2)
}

func (m *mockUsers) Save(ctx context.Context, profile user.Profile, initialBalance int64) (*user.User, error) {
	args := m.Called(ctx, profile, initialBalance)
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUsers) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var txColumns = []string{"id", "user_id", "amount", "type", "reference", "balance_after", "created_at"}

func setupWalletMock(t *testing.T) (*SQLRepository, *mockUsers, sqlmock.Sqlmock, func()) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	users := new(mockUsers)
	repo := NewRepository(sqlxDB, users, 200)

	closer := func() { sqlxDB.Close() }
	return repo, users, sqlMock, closer
}

func TestGetBalance_RegistersUnknownUser(t *testing.T) {
	repo, users, _, close := setupWalletMock(t)
	defer close()

	users.On("GetOrCreate", mock.Anything, user.WebAppProfile(10), int64(200)).
		Return(&user.User{ID: 1, TelegramID: 10, Balance: 200}, true, nil)

	u, err := repo.GetBalance(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(200), u.Balance)
	users.AssertExpectations(t)
}

func TestAddTransaction_Success(t *testing.T) {
	repo, users, sqlMock, close := setupWalletMock(t)
	defer close()

	ctx := context.Background()
	users.On("GetOrCreate", mock.Anything, user.WebAppProfile(20), int64(200)).
		Return(&user.User{ID: 7, TelegramID: 20, Balance: 200}, false, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET balance = balance + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND balance + ? >= 0 RETURNING balance")).
		WithArgs(int64(-10), int64(7), int64(-10)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(190))
	sqlMock.ExpectQuery(regexp.QuoteMeta("INSERT INTO balance_transactions (user_id, amount, type, reference, balance_after) VALUES (?, ?, ?, ?, ?)")).
		WithArgs(int64(7), int64(-10), TxConsultation, "consultation:5", int64(190)).
		WillReturnRows(sqlmock.NewRows(txColumns).AddRow(1, 7, -10, TxConsultation, "consultation:5", 190, time.Now()))
	sqlMock.ExpectCommit()

	tx, err := repo.AddTransaction(ctx, 20, -10, TxConsultation, "consultation:5")
	require.NoError(t, err)
	assert.Equal(t, int64(190), tx.BalanceAfter)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestAddTransaction_InsufficientBalance(t *testing.T) {
	repo, users, sqlMock, close := setupWalletMock(t)
	defer close()

	users.On("GetOrCreate", mock.Anything, mock.Anything, int64(200)).
		Return(&user.User{ID: 7, TelegramID: 20, Balance: 5}, false, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET balance = balance + ?")).
		WithArgs(int64(-10), int64(7), int64(-10)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) > 0 FROM users WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	sqlMock.ExpectRollback()

	_, err := repo.AddTransaction(context.Background(), 20, -10, TxConsultation, "")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestApplyTx_UserMissing(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	defer sqlxDB.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET balance")).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) > 0 FROM users WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	sqlMock.ExpectRollback()

	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)
	_, err = ApplyTx(context.Background(), tx, 99, 100, TxTopUp, "payment")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	require.NoError(t, tx.Rollback())
}

func TestApplyTx_ZeroAmount(t *testing.T) {
	_, err := ApplyTx(context.Background(), nil, 1, 0, TxManual, "")
	assert.ErrorIs(t, err, ErrZeroAmount)
}

func TestGetTransactions(t *testing.T) {
	repo, users, sqlMock, close := setupWalletMock(t)
	defer close()

	users.On("FindByTelegramID", mock.Anything, int64(20)).Return(&user.User{ID: 7}, nil)

	now := time.Now()
	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM balance_transactions WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?")).
		WithArgs(int64(7), 50, 0).
		WillReturnRows(sqlmock.NewRows(txColumns).
			AddRow(2, 7, 100, TxTopUp, "payment:abc", 300, now).
			AddRow(1, 7, 200, TxInitial, "registration", 200, now))

	txs, err := repo.GetTransactions(context.Background(), 20, 0, 0)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, TxTopUp, txs[0].Type)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestGetTransactions_UnknownUser(t *testing.T) {
	repo, users, _, close := setupWalletMock(t)
	defer close()

	users.On("FindByTelegramID", mock.Anything, int64(21)).Return(nil, user.ErrUserNotFound)

	txs, err := repo.GetTransactions(context.Background(), 21, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
