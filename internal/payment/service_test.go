package payment

import (
	"context"
	"errors"
	"testing"

	"mishura/internal/pricing"
	"mishura/internal/user"
	"mishura/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(repo *mockRepository, users *mockUsers, gw *mockGateway) *Service {
	if gw == nil {
		return NewService(repo, users, nil, 200, "RUB", "https://example.com/return")
	}
	return NewService(repo, users, gw, 200, "RUB", "https://example.com/return")
}

func pendingPayment() *Payment {
	return &Payment{
		ID:               testPaymentID,
		UserID:           5,
		PlanID:           "premium",
		Amount:           30000,
		Currency:         "RUB",
		STCoins:          250,
		Status:           StatusPending,
		Gateway:          "yookassa",
		GatewayPaymentID: strPtr("yk_1"),
	}
}

func TestService_Create(t *testing.T) {
	repo, users, gw := new(mockRepository), new(mockUsers), new(mockGateway)

	users.On("GetOrCreate", mock.Anything, user.WebAppProfile(123), int64(200)).
		Return(&user.User{ID: 5, TelegramID: 123, Balance: 200}, true, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Payment) bool {
		return p.UserID == 5 && p.PlanID == "premium" && p.Amount == 30000 &&
			p.STCoins == 250 && p.Status == StatusPending && p.Gateway == "yookassa" && len(p.ID) == 36
	})).Return(nil)
	gw.On("CreatePayment", mock.Anything, mock.MatchedBy(func(req CheckoutRequest) bool {
		return req.Amount == 30000 && req.Currency == "RUB" &&
			req.Metadata["telegram_id"] == "123" && req.Metadata["stcoins"] == "250" &&
			req.ReturnURL == "https://example.com/return"
	})).Return(&Checkout{GatewayPaymentID: "yk_1", ConfirmationURL: "https://pay/yk_1", Status: StatusPending}, nil)
	repo.On("AttachGateway", mock.Anything, mock.AnythingOfType("string"), "yk_1", "https://pay/yk_1").Return(nil)

	p, plan, err := newTestService(repo, users, gw).Create(context.Background(), 123, "premium")
	require.NoError(t, err)

	assert.Equal(t, "premium", plan.ID)
	assert.Equal(t, "yk_1", *p.GatewayPaymentID)
	assert.Equal(t, "https://pay/yk_1", p.ConfirmationURL)
	repo.AssertExpectations(t)
	gw.AssertExpectations(t)
}

func TestService_Create_UnknownPlan(t *testing.T) {
	repo, users, gw := new(mockRepository), new(mockUsers), new(mockGateway)

	_, _, err := newTestService(repo, users, gw).Create(context.Background(), 123, "platinum")
	assert.ErrorIs(t, err, pricing.ErrUnknownPlan)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_Disabled(t *testing.T) {
	_, _, err := newTestService(new(mockRepository), new(mockUsers), nil).Create(context.Background(), 1, "basic")
	assert.ErrorIs(t, err, ErrPaymentsDisabled)
}

func TestService_Create_GatewayFailureCancels(t *testing.T) {
	repo, users, gw := new(mockRepository), new(mockUsers), new(mockGateway)

	users.On("GetOrCreate", mock.Anything, mock.Anything, int64(200)).Return(&user.User{ID: 5}, false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	gw.On("CreatePayment", mock.Anything, mock.Anything).Return(nil, errors.New("yookassa down"))
	repo.On("MarkCanceled", mock.Anything, mock.AnythingOfType("string")).Return(true, nil)

	_, _, err := newTestService(repo, users, gw).Create(context.Background(), 123, "basic")
	assert.Error(t, err)
	repo.AssertCalled(t, "MarkCanceled", mock.Anything, mock.AnythingOfType("string"))
	repo.AssertNotCalled(t, "AttachGateway", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_HandleWebhook_Disabled(t *testing.T) {
	result, err := newTestService(new(mockRepository), new(mockUsers), nil).
		HandleWebhook(context.Background(), []byte(`{}`), nil)
	require.NoError(t, err)
	assert.Equal(t, WebhookIgnored, result)
}

func TestService_HandleWebhook_Credits(t *testing.T) {
	repo, users, gw := new(mockRepository), new(mockUsers), new(mockGateway)
	body := []byte(`{"event":"payment.succeeded"}`)

	gw.On("ParseWebhook", body, mock.Anything).
		Return(&WebhookEvent{Type: "payment.succeeded", GatewayPaymentID: "yk_1", Status: StatusSucceeded}, nil)
	repo.On("GetByGatewayID", mock.Anything, "yk_1").Return(pendingPayment(), nil)
	gw.On("GetPayment", mock.Anything, "yk_1").Return(&GatewayPayment{ID: "yk_1", Status: StatusSucceeded}, nil)
	repo.On("ConfirmAndCredit", mock.Anything, "yk_1").
		Return(pendingPayment(), &wallet.Transaction{Amount: 250, BalanceAfter: 450}, nil)

	result, err := newTestService(repo, users, gw).HandleWebhook(context.Background(), body, nil)
	require.NoError(t, err)
	assert.Equal(t, WebhookCredited, result)
	repo.AssertNumberOfCalls(t, "ConfirmAndCredit", 1)
}

func TestService_HandleWebhook_Replay(t *testing.T) {
	repo, users, gw := new(mockRepository), new(mockUsers), new(mockGateway)

	done := pendingPayment()
	done.Status = StatusSucceeded

	gw.On("ParseWebhook", mock.Anything, mock.Anything).
		Return(&WebhookEvent{Type: "payment.succeeded", GatewayPaymentID: "yk_1", Status: StatusSucceeded}, nil)
	repo.On("GetByGatewayID", mock.Anything, "yk_1").Return(done, nil)

	result, err := newTestService(repo, users, gw).HandleWebhook(context.Background(), []byte(`{}`), nil)
	require.NoError(t, err)
	assert.Equal(t, WebhookDuplicate, result)
	repo.AssertNotCalled(t, "ConfirmAndCredit", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "GetPayment", mock.Anything, mock.Anything)
}

func TestService_HandleWebhook_ConcurrentReplay(t *testing.T) {
	repo, users, gw := new(mockRepository), new(mockUsers), new(mockGateway)

	gw.On("ParseWebhook", mock.Anything, mock.Anything).
		Return(&WebhookEvent{Type: "payment.succeeded", GatewayPaymentID: "yk_1", Status: StatusSucceeded}, nil)
	repo.On("GetByGatewayID", mock.Anything, "yk_1").Return(pendingPayment(), nil)
	gw.On("GetPayment", mock.Anything, "yk_1").Return(&GatewayPayment{Status: StatusSucceeded}, nil)
	repo.On("ConfirmAndCredit", mock.Anything, "yk_1").Return(nil, nil, ErrAlreadyProcessed)

	result, err := newTestService(repo, users, gw).HandleWebhook(context.Background(), []byte(`{}`), nil)
	require.NoError(t, err)
	assert.Equal(t, WebhookDuplicate, result)
}

func TestService_HandleWebhook_GatewayDisagrees(t *testing.T) {
	repo, users, gw := new(mockRepository), new(mockUsers), new(mockGateway)

	gw.On("ParseWebhook", mock.Anything, mock.Anything).
		Return(&WebhookEvent{Type: "payment.succeeded", GatewayPaymentID: "yk_1", Status: StatusSucceeded}, nil)
	repo.On("GetByGatewayID", mock.Anything, "yk_1").Return(pendingPayment(), nil)
	gw.On("GetPayment", mock.Anything, "yk_1").Return(&GatewayPayment{Status: StatusPending}, nil)

	result, err := newTestService(repo, users, gw).HandleWebhook(context.Background(), []byte(`{}`), nil)
	require.NoError(t, err)
	assert.Equal(t, WebhookIgnored, result)
	repo.AssertNotCalled(t, "ConfirmAndCredit", mock.Anything, mock.Anything)
}

func TestService_HandleWebhook_Canceled(t *testing.T) {
	repo, users, gw := new(mockRepository), new(mockUsers), new(mockGateway)

	gw.On("ParseWebhook", mock.Anything, mock.Anything).
		Return(&WebhookEvent{Type: "payment.canceled", GatewayPaymentID: "yk_1", Status: StatusCanceled}, nil)
	repo.On("GetByGatewayID", mock.Anything, "yk_1").Return(pendingPayment(), nil)
	gw.On("GetPayment", mock.Anything, "yk_1").Return(&GatewayPayment{Status: StatusCanceled}, nil)
	repo.On("MarkCanceled", mock.Anything, testPaymentID).Return(true, nil)

	result, err := newTestService(repo, users, gw).HandleWebhook(context.Background(), []byte(`{}`), nil)
	require.NoError(t, err)
	assert.Equal(t, WebhookCanceled, result)
}

func TestService_HandleWebhook_UnknownPayment(t *testing.T) {
	repo, users, gw := new(mockRepository), new(mockUsers), new(mockGateway)

	gw.On("ParseWebhook", mock.Anything, mock.Anything).
		Return(&WebhookEvent{Type: "payment.succeeded", GatewayPaymentID: "yk_x", Status: StatusSucceeded}, nil)
	repo.On("GetByGatewayID", mock.Anything, "yk_x").Return(nil, ErrNotFound)

	result, err := newTestService(repo, users, gw).HandleWebhook(context.Background(), []byte(`{}`), nil)
	require.NoError(t, err)
	assert.Equal(t, WebhookIgnored, result)
}

func TestService_HandleWebhook_Invalid(t *testing.T) {
	gw := new(mockGateway)
	gw.On("ParseWebhook", mock.Anything, mock.Anything).Return(nil, ErrInvalidWebhook)

	_, err := newTestService(new(mockRepository), new(mockUsers), gw).HandleWebhook(context.Background(), []byte(`x`), nil)
	assert.ErrorIs(t, err, ErrInvalidWebhook)
}

func TestService_Status_RefreshesPending(t *testing.T) {
	repo, users, gw := new(mockRepository), new(mockUsers), new(mockGateway)

	succeeded := pendingPayment()
	succeeded.Status = StatusSucceeded

	users.On("FindByTelegramID", mock.Anything, int64(123)).Return(&user.User{ID: 5, Balance: 200}, nil).Once()
	users.On("FindByTelegramID", mock.Anything, int64(123)).Return(&user.User{ID: 5, Balance: 450}, nil).Once()
	repo.On("GetByID", mock.Anything, testPaymentID).Return(pendingPayment(), nil).Once()
	gw.On("GetPayment", mock.Anything, "yk_1").Return(&GatewayPayment{Status: StatusSucceeded}, nil)
	repo.On("ConfirmAndCredit", mock.Anything, "yk_1").Return(succeeded, &wallet.Transaction{BalanceAfter: 450}, nil)
	repo.On("GetByID", mock.Anything, testPaymentID).Return(succeeded, nil).Once()

	p, balance, err := newTestService(repo, users, gw).Status(context.Background(), testPaymentID, 123)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, p.Status)
	assert.Equal(t, int64(450), balance)
}

func TestService_Status_OtherUser(t *testing.T) {
	repo, users, gw := new(mockRepository), new(mockUsers), new(mockGateway)

	users.On("FindByTelegramID", mock.Anything, int64(999)).Return(&user.User{ID: 77}, nil)
	repo.On("GetByID", mock.Anything, testPaymentID).Return(pendingPayment(), nil)

	_, _, err := newTestService(repo, users, gw).Status(context.Background(), testPaymentID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	gw.AssertNotCalled(t, "GetPayment", mock.Anything, mock.Anything)
}

func TestService_Status_InvalidID(t *testing.T) {
	_, _, err := newTestService(new(mockRepository), new(mockUsers), new(mockGateway)).
		Status(context.Background(), "not-a-uuid", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Status_UnknownUser(t *testing.T) {
	users := new(mockUsers)
	users.On("FindByTelegramID", mock.Anything, int64(1)).Return(nil, user.ErrUserNotFound)

	_, _, err := newTestService(new(mockRepository), users, new(mockGateway)).
		Status(context.Background(), testPaymentID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
