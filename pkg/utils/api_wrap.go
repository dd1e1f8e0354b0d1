package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, "success", message, data)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, "success", message, data)
}

func RespondError(c *gin.Context, code int, message string) {
	respond(c, code, "error", message, nil)
}

func respond(c *gin.Context, code int, status, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  status,
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

type errorMapping struct {
	target  error
	code    int
	message string
}

// Ordered; the first match wins. An empty message echoes the wrapped error text.
var errorMappings = []errorMapping{
	{ErrInvalidInput, http.StatusBadRequest, ""},
	{ErrInvalidAmount, http.StatusBadRequest, ""},
	{ErrInvalidContributionType, http.StatusBadRequest, ""},
	{ErrSelfConnection, http.StatusBadRequest, ""},
	{ErrInvalidWebhookPayload, http.StatusBadRequest, ""},
	{ErrMissingUpload, http.StatusBadRequest, ""},
	{ErrUploadTooLarge, http.StatusRequestEntityTooLarge, ""},

	{ErrUnauthorized, http.StatusUnauthorized, "Invalid or expired token"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{ErrForbidden, http.StatusForbidden, "Forbidden"},

	{ErrFamilyNotFound, http.StatusNotFound, "Family not found"},
	{ErrChildNotFound, http.StatusNotFound, "Child not found"},
	{ErrContributionNotFound, http.StatusNotFound, "Contribution not found"},
	{ErrMilestoneNotFound, http.StatusNotFound, "Milestone not found"},
	{ErrRegistryNotFound, http.StatusNotFound, "Gift registry not found"},
	{ErrModuleNotFound, http.StatusNotFound, "Literacy module not found"},

	{ErrEmailAlreadyExists, http.StatusConflict, "Email already registered"},

	{ErrPaymentGateway, http.StatusBadGateway, "Payment provider unavailable, please retry"},
	{ErrMailDelivery, http.StatusBadGateway, "Email provider unavailable, please retry"},
}

// HandleServiceError maps a service error onto the response envelope. Upstream and
// storage details are logged, never returned to the client.
func HandleServiceError(c *gin.Context, err error) {
	traceID := c.GetString("trace_id")

	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		if m.code >= http.StatusInternalServerError {
			zap.L().Warn("upstream failure", zap.String("trace_id", traceID), zap.Error(err))
		}
		msg := m.message
		if msg == "" {
			msg = err.Error()
		}
		RespondError(c, m.code, msg)
		return
	}

	if errors.Is(err, ErrDatabaseError) {
		zap.L().Error("database error", zap.String("trace_id", traceID), zap.Error(err))
	} else {
		zap.L().Error("unhandled service error", zap.String("trace_id", traceID), zap.Error(err))
	}
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}
