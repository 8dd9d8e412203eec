package analysis

import (
	"context"
	"time"

	"mishura/internal/consultation"
	"mishura/internal/stylist"
	"mishura/internal/user"
	"mishura/internal/wallet"

	"github.com/stretchr/testify/mock"
)

type mockAdvisor struct {
	mock.Mock
	configured bool
}

func (m *mockAdvisor) Configured() bool { return m.configured }

func (m *mockAdvisor) Analyze(ctx context.Context, image []byte, occasion, preferences string) (*stylist.Result, error) {
	args := m.Called(ctx, image, occasion, preferences)
	res, _ := args.Get(0).(*stylist.Result)
	return res, args.Error(1)
}

func (m *mockAdvisor) Compare(ctx context.Context, images [][]byte, occasion, preferences string) (*stylist.Result, error) {
	args := m.Called(ctx, images, occasion, preferences)
	res, _ := args.Get(0).(*stylist.Result)
	return res, args.Error(1)
}

type mockWallet struct {
	mock.Mock
}

func (m *mockWallet) GetBalance(ctx context.Context, telegramID int64) (*user.User, error) {
	args := m.Called(ctx, telegramID)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockWallet) AddTransaction(ctx context.Context, telegramID, amount int64, txType, reference string) (*wallet.Transaction, error) {
	args := m.Called(ctx, telegramID, amount, txType, reference)
	tx, _ := args.Get(0).(*wallet.Transaction)
	return tx, args.Error(1)
}

func (m *mockWallet) GetTransactions(ctx context.Context, telegramID int64, limit, offset int) ([]wallet.Transaction, error) {
	args := m.Called(ctx, telegramID, limit, offset)
	txs, _ := args.Get(0).([]wallet.Transaction)
	return txs, args.Error(1)
}

type mockConsultations struct {
	mock.Mock
}

func (m *mockConsultations) Create(ctx context.Context, c *consultation.Consultation) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 42
	}
	return args.Error(0)
}

func (m *mockConsultations) GetByID(ctx context.Context, id, userID int64) (*consultation.Consultation, error) {
	args := m.Called(ctx, id, userID)
	c, _ := args.Get(0).(*consultation.Consultation)
	return c, args.Error(1)
}

func (m *mockConsultations) ListByUser(ctx context.Context, userID int64, limit int) ([]consultation.Consultation, error) {
	args := m.Called(ctx, userID, limit)
	cs, _ := args.Get(0).([]consultation.Consultation)
	return cs, args.Error(1)
}

func (m *mockConsultations) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockConsultations) CountSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}
