package payment

import (
	"context"

	"mishura/internal/wallet"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	AttachGateway(ctx context.Context, id, gatewayPaymentID, confirmationURL string) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	GetByGatewayID(ctx context.Context, gatewayPaymentID string) (*Payment, error)
	MarkCanceled(ctx context.Context, id string) (bool, error)
	ConfirmAndCredit(ctx context.Context, gatewayPaymentID string) (*Payment, *wallet.Transaction, error)
	CountSucceeded(ctx context.Context) (int64, error)
}
