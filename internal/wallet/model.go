package wallet

import "time"

// Transaction types recorded in the balance ledger.
const (
	TxTopUp        = "topup"
	TxConsultation = "consultation"
	TxManual       = "manual"
	TxInitial      = "initial"
)

type Transaction struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	Amount       int64     `db:"amount" json:"amount"`
	Type         string    `db:"type" json:"type"`
	Reference    string    `db:"reference" json:"reference"`
	BalanceAfter int64     `db:"balance_after" json:"balance_after"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type BalanceResponse struct {
	TelegramID int64  `json:"telegram_id" example:"123456789"`
	Balance    int64  `json:"balance" example:"200"`
	Timestamp  string `json:"timestamp" example:"2025-01-02T15:04:05Z"`
}
