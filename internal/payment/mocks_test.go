package payment

import (
	"context"
	"net/http"

	"mishura/internal/user"
	"mishura/internal/wallet"

	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, p *Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepository) AttachGateway(ctx context.Context, id, gatewayPaymentID, confirmationURL string) error {
	return m.Called(ctx, id, gatewayPaymentID, confirmationURL).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Payment, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*Payment)
	return p, args.Error(1)
}

func (m *mockRepository) GetByGatewayID(ctx context.Context, gatewayPaymentID string) (*Payment, error) {
	args := m.Called(ctx, gatewayPaymentID)
	p, _ := args.Get(0).(*Payment)
	return p, args.Error(1)
}

func (m *mockRepository) MarkCanceled(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) ConfirmAndCredit(ctx context.Context, gatewayPaymentID string) (*Payment, *wallet.Transaction, error) {
	args := m.Called(ctx, gatewayPaymentID)
	p, _ := args.Get(0).(*Payment)
	tx, _ := args.Get(1).(*wallet.Transaction)
	return p, tx, args.Error(2)
}

func (m *mockRepository) CountSucceeded(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) FindByTelegramID(ctx context.Context, telegramID int64) (*user.User, error) {
	args := m.Called(ctx, telegramID)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUsers) GetOrCreate(ctx context.Context, profile user.Profile, initialBalance int64) (*user.User, bool, error) {
	args := m.Called(ctx, profile, initialBalance)
	u, _ := args.Get(0).(*user.User)
	return u, args.Bool(1), args.Error(2)
}

func (m *mockUsers) Save(ctx context.Context, profile user.Profile, initialBalance int64) (*user.User, error) {
	args := m.Called(ctx, profile, initialBalance)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUsers) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Name() string { return "yookassa" }

func (m *mockGateway) CreatePayment(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	args := m.Called(ctx, req)
	c, _ := args.Get(0).(*Checkout)
	return c, args.Error(1)
}

func (m *mockGateway) GetPayment(ctx context.Context, gatewayPaymentID string) (*GatewayPayment, error) {
	args := m.Called(ctx, gatewayPaymentID)
	gp, _ := args.Get(0).(*GatewayPayment)
	return gp, args.Error(1)
}

func (m *mockGateway) ParseWebhook(body []byte, header http.Header) (*WebhookEvent, error) {
	args := m.Called(body, header)
	ev, _ := args.Get(0).(*WebhookEvent)
	return ev, args.Error(1)
}

func strPtr(s string) *string { return &s }
