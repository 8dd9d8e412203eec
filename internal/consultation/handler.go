package consultation

import (
	"errors"
	"net/http"
	"strconv"

	"mishura/internal/api"
	"mishura/internal/logger"
	"mishura/internal/user"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo  Repository
	users user.Repository
}

func NewHandler(repo Repository, users user.Repository) *Handler {
	return &Handler{repo: repo, users: users}
}

type ListResponse struct {
	TelegramID    int64          `json:"telegram_id"`
	Consultations []Consultation `json:"consultations"`
}

// List godoc
// @Summary      Consultation history
// @Tags         consultations
// @Produce      json
// @Param        telegram_id  path      int  true   "Telegram user id"
// @Param        limit        query     int  false  "Max records (1-100, default 20)"
// @Success      200          {object}  ListResponse
// @Failure      400          {object}  api.ErrorResponse
// @Router       /api/v1/users/{telegram_id}/consultations [get]
func (h *Handler) List(c *gin.Context) {
	telegramID, ok := api.TelegramIDParam(c)
	if !ok {
		return
	}
	limit := api.QueryInt(c, "limit", 20, 1, 100)

	resp := ListResponse{TelegramID: telegramID, Consultations: []Consultation{}}

	u, err := h.users.FindByTelegramID(c.Request.Context(), telegramID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusOK, resp)
			return
		}
		logger.Error("failed to load user", "telegram_id", telegramID, "error", err)
		api.Internal(c)
		return
	}

	resp.Consultations, err = h.repo.ListByUser(c.Request.Context(), u.ID, limit)
	if err != nil {
		logger.Error("failed to list consultations", "telegram_id", telegramID, "error", err)
		api.Internal(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get one consultation
// @Tags         consultations
// @Produce      json
// @Param        telegram_id  path      int  true  "Telegram user id"
// @Param        id           path      int  true  "Consultation id"
// @Success      200          {object}  Consultation
// @Failure      404          {object}  api.ErrorResponse
// @Router       /api/v1/users/{telegram_id}/consultations/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	telegramID, ok := api.TelegramIDParam(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		api.BadRequest(c, "Некорректный id консультации")
		return
	}

	u, err := h.users.FindByTelegramID(c.Request.Context(), telegramID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			api.Error(c, http.StatusNotFound, api.CodeNotFound, "Консультация не найдена")
			return
		}
		api.Internal(c)
		return
	}

	record, err := h.repo.GetByID(c.Request.Context(), id, u.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.Error(c, http.StatusNotFound, api.CodeNotFound, "Консультация не найдена")
			return
		}
		logger.Error("failed to load consultation", "id", id, "error", err)
		api.Internal(c)
		return
	}

	c.JSON(http.StatusOK, record)
}
