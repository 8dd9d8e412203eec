package admin

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type" example:"Bearer"`
	ExpiresIn    int64  `json:"expires_in" example:"1800"`
}

type StatsResponse struct {
	TotalUsers             int64  `json:"total_users"`
	TotalConsultations     int64  `json:"total_consultations"`
	DailyConsultations     int64  `json:"daily_consultations"`
	TotalPaymentsCompleted int64  `json:"total_payments_completed"`
	Timestamp              string `json:"timestamp"`
}

// AdjustBalanceRequest changes a balance by Amount STCoins; negative amounts debit.
type AdjustBalanceRequest struct {
	Amount int64  `json:"amount" validate:"required,min=-100000,max=100000"`
	Reason string `json:"reason" validate:"required,max=255"`
}

type AdjustBalanceResponse struct {
	TelegramID    int64 `json:"telegram_id"`
	Amount        int64 `json:"amount"`
	Balance       int64 `json:"balance"`
	TransactionID int64 `json:"transaction_id"`
}
