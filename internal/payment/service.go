package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"mishura/internal/logger"
	"mishura/internal/metrics"
	"mishura/internal/pricing"
	"mishura/internal/user"

	"github.com/google/uuid"
)

var ErrPaymentsDisabled = errors.New("payments are not configured")

const (
	WebhookIgnored   = "ignored"
	WebhookCredited  = "credited"
	WebhookDuplicate = "duplicate"
	WebhookCanceled  = "canceled"
)

type Service struct {
	repo           Repository
	users          user.Repository
	gateway        Gateway
	initialBalance int64
	currency       string
	returnURL      string
}

// NewService wires payments to a gateway. A nil gateway disables creation and
// status checks and makes webhooks no-ops.
func NewService(repo Repository, users user.Repository, gateway Gateway, initialBalance int64, currency, returnURL string) *Service {
	return &Service{
		repo:           repo,
		users:          users,
		gateway:        gateway,
		initialBalance: initialBalance,
		currency:       currency,
		returnURL:      returnURL,
	}
}

func (s *Service) Enabled() bool {
	return s.gateway != nil
}

func (s *Service) GatewayName() string {
	if s.gateway == nil {
		return ""
	}
	return s.gateway.Name()
}

// Create stores a pending payment for the plan and opens a checkout at the gateway.
func (s *Service) Create(ctx context.Context, telegramID int64, planID string) (*Payment, pricing.Plan, error) {
	if !s.Enabled() {
		return nil, pricing.Plan{}, ErrPaymentsDisabled
	}

	plan, err := pricing.Find(planID)
	if err != nil {
		return nil, pricing.Plan{}, err
	}

	u, _, err := s.users.GetOrCreate(ctx, user.WebAppProfile(telegramID), s.initialBalance)
	if err != nil {
		return nil, plan, fmt.Errorf("failed to get user: %w", err)
	}

	p := &Payment{
		ID:       uuid.NewString(),
		UserID:   u.ID,
		PlanID:   plan.ID,
		Amount:   plan.PriceKop,
		Currency: s.currency,
		STCoins:  plan.STCoins,
		Status:   StatusPending,
		Gateway:  s.gateway.Name(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, plan, fmt.Errorf("failed to store payment: %w", err)
	}

	checkout, err := s.gateway.CreatePayment(ctx, CheckoutRequest{
		PaymentID:   p.ID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Description: fmt.Sprintf("МИШУРА - %s (%d STCoins)", plan.Name, plan.STCoins),
		ReturnURL:   s.returnURL,
		Metadata: map[string]string{
			"payment_id":  p.ID,
			"user_id":     strconv.FormatInt(u.ID, 10),
			"telegram_id": strconv.FormatInt(telegramID, 10),
			"plan_id":     plan.ID,
			"stcoins":     strconv.FormatInt(plan.STCoins, 10),
		},
	})
	if err != nil {
		if _, cerr := s.repo.MarkCanceled(ctx, p.ID); cerr != nil {
			logger.Warn("failed to cancel payment after gateway error", "payment_id", p.ID, "error", cerr)
		}
		metrics.RecordPayment(p.Gateway, "failed")
		return nil, plan, err
	}

	if err := s.repo.AttachGateway(ctx, p.ID, checkout.GatewayPaymentID, checkout.ConfirmationURL); err != nil {
		return nil, plan, fmt.Errorf("failed to store gateway payment id: %w", err)
	}
	p.GatewayPaymentID = &checkout.GatewayPaymentID
	p.ConfirmationURL = checkout.ConfirmationURL

	metrics.RecordPayment(p.Gateway, StatusPending)
	logger.Info("payment created",
		"payment_id", p.ID,
		"gateway_payment_id", checkout.GatewayPaymentID,
		"telegram_id", telegramID,
		"plan_id", plan.ID,
	)

	return p, plan, nil
}

// HandleWebhook applies a gateway notification and returns what was done.
// State changes are confirmed with the gateway before they are applied, and
// replays of an already applied payment credit nothing.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, header http.Header) (string, error) {
	if !s.Enabled() {
		logger.Warn("payment webhook received but payments are not configured")
		return WebhookIgnored, nil
	}

	ev, err := s.gateway.ParseWebhook(body, header)
	if err != nil {
		metrics.RecordWebhookEvent("unknown", "invalid")
		return "", err
	}

	result, err := s.applyEvent(ctx, ev)
	if err != nil {
		metrics.RecordWebhookEvent(ev.Type, "error")
		return "", err
	}

	metrics.RecordWebhookEvent(ev.Type, result)
	return result, nil
}

func (s *Service) applyEvent(ctx context.Context, ev *WebhookEvent) (string, error) {
	if ev.Status == "" || ev.GatewayPaymentID == "" {
		return WebhookIgnored, nil
	}

	p, err := s.repo.GetByGatewayID(ctx, ev.GatewayPaymentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn("webhook for unknown payment", "gateway_payment_id", ev.GatewayPaymentID, "event", ev.Type)
			return WebhookIgnored, nil
		}
		return "", err
	}
	if p.Status != StatusPending {
		return WebhookDuplicate, nil
	}

	gp, err := s.gateway.GetPayment(ctx, ev.GatewayPaymentID)
	if err != nil {
		return "", err
	}

	return s.settle(ctx, p, gp.Status)
}

// settle moves a pending payment to the status reported by the gateway.
func (s *Service) settle(ctx context.Context, p *Payment, gatewayStatus string) (string, error) {
	switch gatewayStatus {
	case StatusSucceeded:
		_, credit, err := s.repo.ConfirmAndCredit(ctx, *p.GatewayPaymentID)
		if errors.Is(err, ErrAlreadyProcessed) {
			return WebhookDuplicate, nil
		}
		if err != nil {
			return "", err
		}

		metrics.RecordPayment(p.Gateway, StatusSucceeded)
		metrics.RecordBalanceCredit(p.STCoins)
		logger.Info("payment succeeded, balance credited",
			"payment_id", p.ID,
			"user_id", p.UserID,
			"stcoins", p.STCoins,
			"balance_after", credit.BalanceAfter,
		)
		return WebhookCredited, nil

	case StatusCanceled:
		changed, err := s.repo.MarkCanceled(ctx, p.ID)
		if err != nil {
			return "", err
		}
		if !changed {
			return WebhookDuplicate, nil
		}
		metrics.RecordPayment(p.Gateway, StatusCanceled)
		logger.Info("payment canceled", "payment_id", p.ID)
		return WebhookCanceled, nil

	default:
		return WebhookIgnored, nil
	}
}

// Status returns the payment if it belongs to telegramID, refreshing pending
// payments from the gateway, together with the user's current balance.
func (s *Service) Status(ctx context.Context, paymentID string, telegramID int64) (*Payment, int64, error) {
	if !s.Enabled() {
		return nil, 0, ErrPaymentsDisabled
	}
	if _, err := uuid.Parse(paymentID); err != nil {
		return nil, 0, ErrNotFound
	}

	u, err := s.users.FindByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	p, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, 0, err
	}
	if p.UserID != u.ID {
		return nil, 0, ErrNotFound
	}

	if p.Status == StatusPending && p.GatewayPaymentID != nil {
		if refreshed, ok := s.refresh(ctx, p); ok {
			p = refreshed
			if u, err = s.users.FindByTelegramID(ctx, telegramID); err != nil {
				return nil, 0, err
			}
		}
	}

	return p, u.Balance, nil
}

func (s *Service) refresh(ctx context.Context, p *Payment) (*Payment, bool) {
	gp, err := s.gateway.GetPayment(ctx, *p.GatewayPaymentID)
	if err != nil {
		logger.Warn("failed to refresh payment status", "payment_id", p.ID, "error", err)
		return nil, false
	}
	if gp.Status == StatusPending {
		return nil, false
	}

	if _, err := s.settle(ctx, p, gp.Status); err != nil {
		logger.Warn("failed to apply refreshed payment status", "payment_id", p.ID, "error", err)
		return nil, false
	}

	updated, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		logger.Warn("failed to reload payment", "payment_id", p.ID, "error", err)
		return nil, false
	}
	return updated, true
}
