package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondError maps err onto a response. Every handler failure path goes
// through here with the error it actually received.
//
// Unknown users answer 404 {"error"}. Everything else, including input that
// cannot be coerced, answers 500 {"message"}.
func respondError(c *gin.Context, logger *zap.Logger, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, service.ErrValidationFailed):
		logger.Warn("Rejected request input",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestIDFromContext(c)),
			zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	default:
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestIDFromContext(c)),
			zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

// bindError marks a body that could not be decoded as a validation failure.
func bindError(err error) error {
	return fmt.Errorf("%w: invalid request body: %v", service.ErrValidationFailed, err)
}
