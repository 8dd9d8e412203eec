package payment

import "time"

const (
	StatusPending   = "pending"
	StatusSucceeded = "succeeded"
	StatusCanceled  = "canceled"
)

// Payment is a balance top-up. Amount is in minor currency units (kopecks).
type Payment struct {
	ID               string    `db:"id" json:"id"`
	UserID           int64     `db:"user_id" json:"user_id"`
	PlanID           string    `db:"plan_id" json:"plan_id"`
	Amount           int64     `db:"amount" json:"amount"`
	Currency         string    `db:"currency" json:"currency"`
	STCoins          int64     `db:"stcoins" json:"stcoins"`
	Status           string    `db:"status" json:"status"`
	Gateway          string    `db:"gateway" json:"gateway"`
	GatewayPaymentID *string   `db:"gateway_payment_id" json:"gateway_payment_id,omitempty"`
	ConfirmationURL  string    `db:"confirmation_url" json:"confirmation_url"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	TelegramID int64  `json:"telegram_id" validate:"required,gt=0"`
	PlanID     string `json:"plan_id" validate:"required,max=32"`
}

type PlanSummary struct {
	ID      string `json:"id" example:"premium"`
	Name    string `json:"name"`
	STCoins int64  `json:"stcoins" example:"250"`
}

type CreateResponse struct {
	PaymentID        string      `json:"payment_id"`
	GatewayPaymentID string      `json:"gateway_payment_id"`
	PaymentURL       string      `json:"payment_url"`
	Amount           float64     `json:"amount" example:"300"`
	Currency         string      `json:"currency" example:"RUB"`
	Plan             PlanSummary `json:"plan"`
	Status           string      `json:"status" example:"pending"`
	STCoinsAmount    int64       `json:"stcoins_amount" example:"250"`
}

type StatusResponse struct {
	PaymentID     string  `json:"payment_id"`
	Status        string  `json:"status" example:"succeeded"`
	PlanID        string  `json:"plan_id" example:"premium"`
	Amount        float64 `json:"amount" example:"300"`
	Currency      string  `json:"currency" example:"RUB"`
	STCoinsAmount int64   `json:"stcoins_amount" example:"250"`
	Balance       int64   `json:"balance" example:"450"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type WebhookResponse struct {
	Status string `json:"status" example:"credited"`
}

func majorUnits(minor int64) float64 {
	return float64(minor) / 100
}
