package payment

import (
	"context"
	"errors"
	"net/http"

	"mishura/internal/config"
)

var (
	ErrInvalidWebhook = errors.New("invalid webhook payload")
	ErrGateway        = errors.New("payment gateway error")
)

type CheckoutRequest struct {
	PaymentID   string
	Amount      int64
	Currency    string
	Description string
	ReturnURL   string
	Metadata    map[string]string
}

type Checkout struct {
	GatewayPaymentID string
	ConfirmationURL  string
	Status           string
}

// GatewayPayment is the gateway's view of a payment, mapped to local statuses.
type GatewayPayment struct {
	ID       string
	Status   string
	Metadata map[string]string
}

// WebhookEvent carries the gateway payment a notification is about. Status
// is empty for events that do not change a payment.
type WebhookEvent struct {
	Type             string
	GatewayPaymentID string
	Status           string
}

type Gateway interface {
	Name() string
	CreatePayment(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	GetPayment(ctx context.Context, gatewayPaymentID string) (*GatewayPayment, error)
	ParseWebhook(body []byte, header http.Header) (*WebhookEvent, error)
}

// NewGateway returns the gateway chosen by PAYMENT_GATEWAY, or nil when its
// credentials are missing and payments are disabled.
func NewGateway(cfg *config.Config) Gateway {
	if !cfg.PaymentsConfigured() {
		return nil
	}

	switch cfg.PaymentGateway {
	case config.GatewayStripe:
		return NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, nil)
	default:
		return NewYooKassaGateway(cfg.YooKassaAPIURL, cfg.YooKassaShopID, cfg.YooKassaSecretKey)
	}
}
