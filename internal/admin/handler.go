package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"mishura/internal/api"
	"mishura/internal/auth"
	"mishura/internal/logger"
	"mishura/internal/wallet"

	"github.com/gin-gonic/gin"
)

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type ConsultationCounter interface {
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type PaymentCounter interface {
	CountSucceeded(ctx context.Context) (int64, error)
}

type Credentials struct {
	Username     string
	PasswordHash string
}

type Handler struct {
	creds         Credentials
	tokens        *auth.Tokens
	users         Counter
	consultations ConsultationCounter
	payments      PaymentCounter
	wallets       wallet.Repository
	now           func() time.Time
}

func NewHandler(creds Credentials, tokens *auth.Tokens, users Counter, consultations ConsultationCounter, payments PaymentCounter, wallets wallet.Repository) *Handler {
	return &Handler{
		creds:         creds,
		tokens:        tokens,
		users:         users,
		consultations: consultations,
		payments:      payments,
		wallets:       wallets,
		now:           time.Now,
	}
}

// Login godoc
// @Summary      Admin login
// @Description  Exchanges admin credentials for access and refresh tokens.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Admin credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /api/v1/admin/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !api.BindJSON(c, &req) {
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.creds.Username)) == 1
	passOK := auth.CheckPassword(h.creds.PasswordHash, req.Password)
	if !userOK || !passOK {
		logger.Warn("admin login failed", "username", req.Username, "ip", c.ClientIP())
		api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Неверное имя пользователя или пароль")
		return
	}

	pair, err := h.tokens.Issue(h.creds.Username, auth.RoleAdmin)
	if err != nil {
		logger.Error("failed to generate admin tokens", "error", err)
		api.Internal(c)
		return
	}

	logger.Info("admin logged in", "username", h.creds.Username)
	c.JSON(http.StatusOK, newLoginResponse(pair))
}

// Refresh godoc
// @Summary      Refresh admin tokens
// @Description  Returns a new access token and a new refresh token.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "Refresh token"
// @Success      200      {object}  LoginResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /api/v1/admin/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !api.BindJSON(c, &req) {
		return
	}

	pair, claims, err := h.tokens.Rotate(req.RefreshToken)
	if err != nil {
		api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Недействительный токен")
		return
	}
	// tokens issued under a previous ADMIN_USERNAME are not renewed
	if subtle.ConstantTimeCompare([]byte(claims.Username), []byte(h.creds.Username)) != 1 {
		api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Недействительный токен")
		return
	}

	c.JSON(http.StatusOK, newLoginResponse(pair))
}

func newLoginResponse(pair auth.Pair) LoginResponse {
	return LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(pair.ExpiresIn / time.Second),
	}
}

// Stats godoc
// @Summary      Service statistics
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  StatsResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/v1/admin/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.now()

	var (
		resp StatsResponse
		err  error
	)
	if resp.TotalUsers, err = h.users.Count(ctx); err != nil {
		h.statsFailed(c, "users", err)
		return
	}
	if resp.TotalConsultations, err = h.consultations.Count(ctx); err != nil {
		h.statsFailed(c, "consultations", err)
		return
	}
	if resp.DailyConsultations, err = h.consultations.CountSince(ctx, now.Add(-24*time.Hour)); err != nil {
		h.statsFailed(c, "daily consultations", err)
		return
	}
	if resp.TotalPaymentsCompleted, err = h.payments.CountSucceeded(ctx); err != nil {
		h.statsFailed(c, "payments", err)
		return
	}
	resp.Timestamp = now.UTC().Format(time.RFC3339)

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) statsFailed(c *gin.Context, what string, err error) {
	logger.Error("failed to collect stats", "metric", what, "error", err)
	api.Internal(c)
}

// AdjustBalance godoc
// @Summary      Manual balance adjustment
// @Description  Writes a manual ledger entry. Debits below zero are rejected.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        telegram_id  path      int                   true  "Telegram user id"
// @Param        request      body      AdjustBalanceRequest  true  "Amount and reason"
// @Success      200          {object}  AdjustBalanceResponse
// @Failure      400          {object}  api.ErrorResponse
// @Failure      402          {object}  api.ErrorResponse
// @Router       /api/v1/admin/users/{telegram_id}/balance [post]
func (h *Handler) AdjustBalance(c *gin.Context) {
	telegramID, ok := api.TelegramIDParam(c)
	if !ok {
		return
	}

	var req AdjustBalanceRequest
	if !api.BindJSON(c, &req) {
		return
	}

	admin, _ := auth.GetUsername(c)
	tx, err := h.wallets.AddTransaction(c.Request.Context(), telegramID, req.Amount, wallet.TxManual, "admin:"+admin+":"+req.Reason)
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientBalance) {
			api.Error(c, http.StatusPaymentRequired, api.CodeInsufficientBalance, "Недостаточно STCoins для списания")
			return
		}
		logger.Error("failed to adjust balance", "telegram_id", telegramID, "amount", req.Amount, "error", err)
		api.Internal(c)
		return
	}

	logger.Info("balance adjusted by admin",
		"admin", admin,
		"telegram_id", telegramID,
		"amount", req.Amount,
		"balance_after", tx.BalanceAfter,
	)
	c.JSON(http.StatusOK, AdjustBalanceResponse{
		TelegramID:    telegramID,
		Amount:        req.Amount,
		Balance:       tx.BalanceAfter,
		TransactionID: tx.ID,
	})
}
