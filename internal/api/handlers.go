package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-vault/backend/internal/middleware"
	"github.com/pageza/recipe-vault/backend/internal/model"
	"github.com/pageza/recipe-vault/backend/internal/service"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Recipe Vault API is running",
		"version": Version,
	})
}

// ValidationErrorResponse is returned for rejected input.
type ValidationErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var verr model.ValidationError
	switch {
	case errors.Is(err, service.ErrShoppingListNotFound):
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: service.ErrShoppingListNotFound.Error()})
	case errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: service.ErrItemNotFound.Error()})
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: service.ErrRecipeNotFound.Error()})
	case errors.Is(err, service.ErrInvalidServings):
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Warn("request aborted", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusServiceUnavailable, middleware.ErrorResponse{Error: "request cancelled"})
	default:
		logger.Error("request failed",
			"error", err,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(middleware.RequestIDKey),
		)
		c.JSON(http.StatusInternalServerError, middleware.ErrorResponse{Error: "Internal Server Error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: msg})
}

// pathInt parses a numeric path parameter, writing a 400 on failure.
func pathInt(c *gin.Context, name, what string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+what)
		return 0, false
	}
	return v, true
}
