package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeAIUnavailable       = "AI_UNAVAILABLE"
	CodeAIResponseError     = "AI_RESPONSE_ERROR"
	CodeInvalidImage        = "INVALID_IMAGE"
	CodeInvalidImageCount   = "INVALID_IMAGE_COUNT"
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeUnknownPlan         = "UNKNOWN_PLAN"
	CodePaymentsUnavailable = "PAYMENTS_UNAVAILABLE"
	CodePaymentNotFound     = "PAYMENT_NOT_FOUND"
	CodePaymentFailed       = "PAYMENT_FAILED"
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternal            = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message" example:"something went wrong"`
	Code    string `json:"code" example:"INTERNAL_ERROR"`
}

type MessageResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status       string `json:"status" example:"healthy"`
	Service      string `json:"service" example:"mishura"`
	Version      string `json:"version" example:"2.6.1"`
	AIConfigured bool   `json:"ai_configured"`
	Uptime       string `json:"uptime" example:"3h12m5s"`
}

type ComponentsHealthResponse struct {
	Status      string            `json:"status" example:"healthy"`
	Timestamp   string            `json:"timestamp"`
	Components  map[string]string `json:"components"`
	Version     string            `json:"version" example:"2.6.1"`
	Environment string            `json:"environment" example:"production"`
}

// Error writes the error envelope and aborts the handler chain.
func Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:  StatusError,
		Message: message,
		Code:    code,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidRequest, message)
}

func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "Внутренняя ошибка сервера")
}
