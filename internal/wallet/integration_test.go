package wallet_test

import (
	"context"
	"sync"
	"testing"

	"mishura/internal/testutil"
	"mishura/internal/user"
	"mishura/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBalanceCreatesUserOnce(t *testing.T) {
	database := testutil.NewSQLite(t)
	users := user.NewRepository(database)
	repo := wallet.NewRepository(database, users, 200)
	ctx := context.Background()

	const callers = 10
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := repo.GetBalance(ctx, 1001)
			assert.NoError(t, err)
			if u != nil {
				assert.Equal(t, int64(200), u.Balance)
			}
		}()
	}
	wg.Wait()

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	txs, err := repo.GetTransactions(ctx, 1001, 10, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, wallet.TxInitial, txs[0].Type)
	assert.Equal(t, int64(200), txs[0].BalanceAfter)
}

func TestAddTransactionNeverOverdraws(t *testing.T) {
	database := testutil.NewSQLite(t)
	repo := wallet.NewRepository(database, user.NewRepository(database), 30)
	ctx := context.Background()

	tx, err := repo.AddTransaction(ctx, 2002, -20, wallet.TxConsultation, "single:abc")
	require.NoError(t, err)
	assert.Equal(t, int64(10), tx.BalanceAfter)

	_, err = repo.AddTransaction(ctx, 2002, -20, wallet.TxConsultation, "single:def")
	assert.ErrorIs(t, err, wallet.ErrInsufficientBalance)

	u, err := repo.GetBalance(ctx, 2002)
	require.NoError(t, err)
	assert.Equal(t, int64(10), u.Balance)

	txs, err := repo.GetTransactions(ctx, 2002, 10, 0)
	require.NoError(t, err)
	assert.Len(t, txs, 2, "the rejected debit leaves no ledger row")
}

func TestConcurrentDebitsStopAtZero(t *testing.T) {
	database := testutil.NewSQLite(t)
	repo := wallet.NewRepository(database, user.NewRepository(database), 50)
	ctx := context.Background()

	_, err := repo.GetBalance(ctx, 3003)
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AddTransaction(ctx, 3003, -10, wallet.TxConsultation, "single"); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, accepted)
	u, err := repo.GetBalance(ctx, 3003)
	require.NoError(t, err)
	assert.Equal(t, int64(0), u.Balance)
}
