package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"mishura/internal/config"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// StripeGateway sells top-ups through Stripe Checkout sessions in payment mode.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway creates the gateway; nil backends means the live Stripe API.
func NewStripeGateway(secretKey, webhookSecret string, backends *stripe.Backends) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, backends)

	return &StripeGateway{api: sc, webhookSecret: webhookSecret}
}

func (g *StripeGateway) Name() string {
	return config.GatewayStripe
}

func (g *StripeGateway) CreatePayment(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(req.PaymentID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.ReturnURL),
		CancelURL:  stripe.String(req.ReturnURL),
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.PaymentID)
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	return &Checkout{
		GatewayPaymentID: sess.ID,
		ConfirmationURL:  sess.URL,
		Status:           checkoutStatus(sess),
	}, nil
}

func (g *StripeGateway) GetPayment(ctx context.Context, gatewayPaymentID string) (*GatewayPayment, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.Get(gatewayPaymentID, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	return &GatewayPayment{
		ID:       sess.ID,
		Status:   checkoutStatus(sess),
		Metadata: sess.Metadata,
	}, nil
}

func (g *StripeGateway) ParseWebhook(body []byte, header http.Header) (*WebhookEvent, error) {
	if g.webhookSecret == "" {
		return nil, fmt.Errorf("%w: STRIPE_WEBHOOK_SECRET is not set", ErrInvalidWebhook)
	}

	event, err := webhook.ConstructEventWithOptions(
		body,
		header.Get("Stripe-Signature"),
		g.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	eventType := string(event.Type)
	if !strings.HasPrefix(eventType, "checkout.session.") {
		return &WebhookEvent{Type: eventType}, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	ev := &WebhookEvent{Type: eventType, GatewayPaymentID: sess.ID}
	switch eventType {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		ev.Status = StatusSucceeded
	case "checkout.session.expired", "checkout.session.async_payment_failed":
		ev.Status = StatusCanceled
	}
	return ev, nil
}

func checkoutStatus(sess *stripe.CheckoutSession) string {
	switch {
	case sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return StatusSucceeded
	case sess.Status == stripe.CheckoutSessionStatusExpired:
		return StatusCanceled
	default:
		return StatusPending
	}
}
