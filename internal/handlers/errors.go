package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondWithError writes err as {"error": message} with the status its
// chain maps to. Client errors carry the service message; server errors
// carry fallback unless they are lock conflicts, which keep their message.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := apperrors.StatusCode(err)

	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		message = fallback
		if errors.Is(err, apperrors.ErrConflict) {
			message = err.Error()
		}
		c.JSON(status, gin.H{"error": message})
		return
	}

	logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": message})
}

func respondBindError(c *gin.Context, logger *slog.Logger, what string, err error) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}
