package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mishura/internal/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

type ykAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type ykConfirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

type ykCreatePayment struct {
	Amount       ykAmount          `json:"amount"`
	Capture      bool              `json:"capture"`
	Confirmation ykConfirmation    `json:"confirmation"`
	Description  string            `json:"description"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type ykPayment struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Paid         bool              `json:"paid"`
	Amount       ykAmount          `json:"amount"`
	Confirmation *ykConfirmation   `json:"confirmation,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type ykError struct {
	Type        string `json:"type"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ykNotification struct {
	Type   string    `json:"type"`
	Event  string    `json:"event"`
	Object ykPayment `json:"object"`
}

// YooKassaGateway talks to the YooKassa REST API (v3).
type YooKassaGateway struct {
	client *resty.Client
}

func NewYooKassaGateway(apiURL, shopID, secretKey string) *YooKassaGateway {
	client := resty.New().
		SetBaseURL(apiURL).
		SetBasicAuth(shopID, secretKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &YooKassaGateway{client: client}
}

func (g *YooKassaGateway) Name() string {
	return config.GatewayYooKassa
}

func (g *YooKassaGateway) CreatePayment(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	body := ykCreatePayment{
		Amount: ykAmount{
			Value:    formatAmount(req.Amount),
			Currency: req.Currency,
		},
		Capture: true,
		Confirmation: ykConfirmation{
			Type:      "redirect",
			ReturnURL: req.ReturnURL,
		},
		Description: req.Description,
		Metadata:    req.Metadata,
	}

	idempotenceKey := req.PaymentID
	if idempotenceKey == "" {
		idempotenceKey = uuid.NewString()
	}

	var out ykPayment
	var apiErr ykError
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Idempotence-Key", idempotenceKey).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/payments")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: yookassa returned %d: %s", ErrGateway, resp.StatusCode(), apiErr.Description)
	}
	if out.Confirmation == nil || out.Confirmation.ConfirmationURL == "" {
		return nil, fmt.Errorf("%w: yookassa payment %s has no confirmation url", ErrGateway, out.ID)
	}

	return &Checkout{
		GatewayPaymentID: out.ID,
		ConfirmationURL:  out.Confirmation.ConfirmationURL,
		Status:           yooKassaStatus(out.Status),
	}, nil
}

func (g *YooKassaGateway) GetPayment(ctx context.Context, gatewayPaymentID string) (*GatewayPayment, error) {
	var out ykPayment
	var apiErr ykError
	resp, err := g.client.R().
		SetContext(ctx).
		SetPathParam("id", gatewayPaymentID).
		SetResult(&out).
		SetError(&apiErr).
		Get("/payments/{id}")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: yookassa returned %d: %s", ErrGateway, resp.StatusCode(), apiErr.Description)
	}

	return &GatewayPayment{
		ID:       out.ID,
		Status:   yooKassaStatus(out.Status),
		Metadata: out.Metadata,
	}, nil
}

// ParseWebhook decodes a YooKassa notification. Notifications are not signed,
// so callers must confirm the status with GetPayment.
func (g *YooKassaGateway) ParseWebhook(body []byte, _ http.Header) (*WebhookEvent, error) {
	var n ykNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	if n.Event == "" || n.Object.ID == "" {
		return nil, fmt.Errorf("%w: missing event or payment id", ErrInvalidWebhook)
	}

	ev := &WebhookEvent{Type: n.Event, GatewayPaymentID: n.Object.ID}
	switch n.Event {
	case "payment.succeeded":
		ev.Status = StatusSucceeded
	case "payment.canceled":
		ev.Status = StatusCanceled
	}
	return ev, nil
}

func yooKassaStatus(s string) string {
	switch s {
	case "succeeded":
		return StatusSucceeded
	case "canceled":
		return StatusCanceled
	default:
		// pending, waiting_for_capture
		return StatusPending
	}
}

// formatAmount renders kopecks as the "150.00" string YooKassa expects.
func formatAmount(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
