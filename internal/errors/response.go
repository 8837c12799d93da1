package errors

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ApiError is the single error body shape shared by every endpoint.
type ApiError struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Errors    []string  `json:"errors"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	ErrorCode string    `json:"errorCode"`
}

// RespondWithError writes the standard error body.
// details carries per-field validation messages; it may be nil.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string, details []string) {
	if details == nil {
		details = []string{message}
	}
	c.JSON(statusCode, ApiError{
		Status:    statusCode,
		Message:   message,
		Errors:    details,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
		ErrorCode: errorCode,
	})
}

// Shorthand responders for the common taxonomy entries.

func NotFound(c *gin.Context, message string) {
	RespondWithError(c, http.StatusNotFound, CodeResourceNotFound, message, nil)
}

func BadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, CodeBadRequest, message, nil)
}

func Validation(c *gin.Context, message string, details []string) {
	RespondWithError(c, http.StatusBadRequest, CodeValidationError, message, details)
}

func Conflict(c *gin.Context, message string) {
	RespondWithError(c, http.StatusConflict, CodeConflict, message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access forbidden"
	}
	RespondWithError(c, http.StatusForbidden, CodeForbidden, message, nil)
}

func PaymentError(c *gin.Context, message string) {
	RespondWithError(c, http.StatusInternalServerError, CodePaymentError, message, nil)
}

func EndpointNotFound(c *gin.Context) {
	RespondWithError(c, http.StatusNotFound, CodeEndpointNotFound, "No endpoint matches the requested path and method", nil)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "An unexpected error occurred. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, CodeInternalError, message, nil)
}
