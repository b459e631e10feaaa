package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/cheruab/dreamacademyScM-sub002/internal/errors"
	"github.com/cheruab/dreamacademyScM-sub002/internal/services"
	"github.com/cheruab/dreamacademyScM-sub002/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse wraps a page of items
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and error mapping for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// LogRequest logs an incoming request through the request scoped logger
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{"remote_addr", c.ClientIP()}, additionalFields...)
	utils.GetLoggerFromContext(c, h.requestLogger(c)).Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	utils.GetLoggerFromContext(c, h.requestLogger(c)).LogError(err, message, additionalFields...)
}

// requestLogger is used when ContextLogger middleware is not installed
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	return h.logger.With(
		"request_id", c.GetHeader(utils.RequestIDHeader),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// handleServiceError maps service errors to HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	// Handle custom error types first
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
			Code:    "validation_failed",
		})
		return
	}

	var noValid *apperrors.NoValidQuestionsError
	if errors.As(err, &noValid) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "No valid questions found",
			Details: noValid,
			Code:    "no_valid_questions",
		})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: businessRuleError.Message,
			Details: map[string]interface{}{
				"rule":    businessRuleError.Rule,
				"context": businessRuleError.Context,
			},
			Code: "business_rule",
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrExamNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Exam not found"})
	case errors.Is(err, services.ErrResultNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Result not found"})
	case errors.Is(err, apperrors.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Exam text is empty", Code: "empty_input"})
	case errors.Is(err, apperrors.ErrMissingTitle):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Exam title is required", Code: "missing_title"})
	case errors.Is(err, apperrors.ErrNoQuestions):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Exam must contain at least one question", Code: "no_questions"})
	case errors.Is(err, services.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Unsupported export format", Details: "use csv or xlsx"})
	case errors.Is(err, services.ErrBadRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Bad request", Details: err.Error()})
	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
