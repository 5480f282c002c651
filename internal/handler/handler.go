package handler

import (
	"errors"
	"net/http"

	"clinic-backend/internal/service"
	"clinic-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeServiceError translates a domain failure into its boundary signal.
// Unauthorized cases keep their (already generic) message; unexpected
// errors never leak details.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
	case service.IsDuplicate(err):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
	}
}
