package user

import (
	"errors"
	"net/http"

	"mishura/internal/api"
	"mishura/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo           Repository
	initialBalance int64
}

func NewHandler(repo Repository, initialBalance int64) *Handler {
	return &Handler{
		repo:           repo,
		initialBalance: initialBalance,
	}
}

// GetProfile godoc
// @Summary      Get user profile
// @Tags         users
// @Produce      json
// @Param        telegram_id  path      int  true  "Telegram user id"
// @Success      200          {object}  User
// @Failure      400          {object}  api.ErrorResponse
// @Failure      404          {object}  api.ErrorResponse
// @Router       /api/v1/users/{telegram_id} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	telegramID, ok := api.TelegramIDParam(c)
	if !ok {
		return
	}

	u, err := h.repo.FindByTelegramID(c.Request.Context(), telegramID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			api.Error(c, http.StatusNotFound, api.CodeNotFound, "Пользователь не найден")
			return
		}
		logger.Error("failed to load user", "telegram_id", telegramID, "error", err)
		api.Internal(c)
		return
	}

	c.JSON(http.StatusOK, u)
}

// SaveProfile godoc
// @Summary      Create or update user profile
// @Description  Registers the user with the starting balance on first call. Empty names keep stored values.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        telegram_id  path      int      true  "Telegram user id"
// @Param        request      body      Profile  true  "Profile"
// @Success      200          {object}  User
// @Failure      400          {object}  api.ErrorResponse
// @Router       /api/v1/users/{telegram_id} [put]
func (h *Handler) SaveProfile(c *gin.Context) {
	telegramID, ok := api.TelegramIDParam(c)
	if !ok {
		return
	}

	var req Profile
	if !api.BindJSON(c, &req) {
		return
	}
	req.TelegramID = telegramID

	u, err := h.repo.Save(c.Request.Context(), req, h.initialBalance)
	if err != nil {
		logger.Error("failed to save user", "telegram_id", telegramID, "error", err)
		api.Internal(c)
		return
	}

	c.JSON(http.StatusOK, u)
}
