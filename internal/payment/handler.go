package payment

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"mishura/internal/api"
	"mishura/internal/logger"
	"mishura/internal/pricing"

	"github.com/gin-gonic/gin"
)

const maxWebhookBytes = 64 << 10

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// CreatePayment godoc
// @Summary      Create a top-up payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Plan and user"
// @Success      200      {object}  CreateResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      502      {object}  api.ErrorResponse
// @Failure      503      {object}  api.ErrorResponse
// @Router       /api/v1/payments/create [post]
func (h *Handler) CreatePayment(c *gin.Context) {
	if !h.svc.Enabled() {
		api.Error(c, http.StatusServiceUnavailable, api.CodePaymentsUnavailable, "Платежи недоступны")
		return
	}

	var req CreateRequest
	if !api.BindJSON(c, &req) {
		return
	}

	p, plan, err := h.svc.Create(c.Request.Context(), req.TelegramID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrUnknownPlan):
			api.Error(c, http.StatusBadRequest, api.CodeUnknownPlan, "Неизвестный план: "+req.PlanID)
		case errors.Is(err, ErrGateway):
			logger.Error("gateway rejected payment", "telegram_id", req.TelegramID, "plan_id", req.PlanID, "error", err)
			api.Error(c, http.StatusBadGateway, api.CodePaymentFailed, "Ошибка создания платежа")
		default:
			logger.Error("failed to create payment", "telegram_id", req.TelegramID, "plan_id", req.PlanID, "error", err)
			api.Error(c, http.StatusInternalServerError, api.CodePaymentFailed, "Ошибка создания платежа")
		}
		return
	}

	c.JSON(http.StatusOK, CreateResponse{
		PaymentID:        p.ID,
		GatewayPaymentID: *p.GatewayPaymentID,
		PaymentURL:       p.ConfirmationURL,
		Amount:           majorUnits(p.Amount),
		Currency:         p.Currency,
		Plan: PlanSummary{
			ID:      plan.ID,
			Name:    plan.Name,
			STCoins: plan.STCoins,
		},
		Status:        p.Status,
		STCoinsAmount: p.STCoins,
	})
}

// Webhook godoc
// @Summary      Payment gateway notification
// @Description  Idempotent: a replayed notification never credits twice.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  WebhookResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/v1/payments/webhook [post]
func (h *Handler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		api.BadRequest(c, "invalid payload")
		return
	}

	result, err := h.svc.HandleWebhook(c.Request.Context(), body, c.Request.Header)
	if err != nil {
		if errors.Is(err, ErrInvalidWebhook) {
			logger.Warn("rejected payment webhook", "error", err)
			api.BadRequest(c, "invalid webhook")
			return
		}
		// non-2xx makes the gateway redeliver
		logger.Error("failed to process payment webhook", "error", err)
		api.Error(c, http.StatusInternalServerError, api.CodePaymentFailed, "webhook processing failed")
		return
	}

	c.JSON(http.StatusOK, WebhookResponse{Status: result})
}

// GetStatus godoc
// @Summary      Payment status
// @Tags         payments
// @Produce      json
// @Param        payment_id   path      string  true  "Payment id"
// @Param        telegram_id  query     int     true  "Owner telegram id"
// @Success      200          {object}  StatusResponse
// @Failure      400          {object}  api.ErrorResponse
// @Failure      404          {object}  api.ErrorResponse
// @Failure      503          {object}  api.ErrorResponse
// @Router       /api/v1/payments/{payment_id}/status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	if !h.svc.Enabled() {
		api.Error(c, http.StatusServiceUnavailable, api.CodePaymentsUnavailable, "Платежи недоступны")
		return
	}

	telegramID, err := strconv.ParseInt(c.Query("telegram_id"), 10, 64)
	if err != nil || telegramID <= 0 {
		api.BadRequest(c, "telegram_id обязателен")
		return
	}

	paymentID := c.Param("payment_id")
	p, balance, err := h.svc.Status(c.Request.Context(), paymentID, telegramID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.Error(c, http.StatusNotFound, api.CodePaymentNotFound, "Платеж не найден")
			return
		}
		logger.Error("failed to get payment status", "payment_id", paymentID, "error", err)
		api.Internal(c)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		PaymentID:     p.ID,
		Status:        p.Status,
		PlanID:        p.PlanID,
		Amount:        majorUnits(p.Amount),
		Currency:      p.Currency,
		STCoinsAmount: p.STCoins,
		Balance:       balance,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.UTC().Format(time.RFC3339),
	})
}
