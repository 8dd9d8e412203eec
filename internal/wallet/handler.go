package wallet

import (
	"net/http"
	"time"

	"mishura/internal/api"
	"mishura/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetBalance godoc
// @Summary      Get user balance
// @Description  Unknown users are registered with the starting balance.
// @Tags         balance
// @Produce      json
// @Param        telegram_id  path      int  true  "Telegram user id"
// @Success      200          {object}  BalanceResponse
// @Failure      400          {object}  api.ErrorResponse
// @Failure      500          {object}  api.ErrorResponse
// @Router       /api/v1/users/{telegram_id}/balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	telegramID, ok := api.TelegramIDParam(c)
	if !ok {
		return
	}

	u, err := h.repo.GetBalance(c.Request.Context(), telegramID)
	if err != nil {
		logger.Error("failed to load balance", "telegram_id", telegramID, "error", err)
		api.Internal(c)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		TelegramID: telegramID,
		Balance:    u.Balance,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// ListTransactions godoc
// @Summary      List balance transactions
// @Tags         balance
// @Produce      json
// @Param        telegram_id  path      int  true   "Telegram user id"
// @Param        limit        query     int  false  "Page size (1-100)"
// @Param        offset       query     int  false  "Offset"
// @Success      200          {array}   Transaction
// @Failure      400          {object}  api.ErrorResponse
// @Router       /api/v1/users/{telegram_id}/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	telegramID, ok := api.TelegramIDParam(c)
	if !ok {
		return
	}

	limit := api.QueryInt(c, "limit", 50, 1, 100)
	offset := api.QueryInt(c, "offset", 0, 0, 1<<30)

	txs, err := h.repo.GetTransactions(c.Request.Context(), telegramID, limit, offset)
	if err != nil {
		logger.Error("failed to load transactions", "telegram_id", telegramID, "error", err)
		api.Internal(c)
		return
	}

	c.JSON(http.StatusOK, txs)
}
