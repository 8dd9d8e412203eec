package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// TelegramIDParam parses the :telegram_id path parameter. On failure the
// 400 response is already written.
func TelegramIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil || id <= 0 {
		BadRequest(c, "telegram_id должен быть положительным числом")
		return 0, false
	}
	return id, true
}

// QueryInt reads an integer query parameter clamped to [min, max].
func QueryInt(c *gin.Context, key string, def, min, max int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
