package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/photoshare/internal/domain"
)

type errorBody struct {
	Message string `json:"message"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data})
}

func respondPage(c *gin.Context, data any, page domain.Pagination) {
	c.JSON(http.StatusOK, gin.H{"data": data, "pagination": page})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": errorBody{Message: message}})
}

// respondDomainError maps repository errors onto status codes
func respondDomainError(c *gin.Context, err error, conflictMessage string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "Photo not found")
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(c, http.StatusForbidden, "You are not allowed to do that")
	case errors.Is(err, domain.ErrConflict):
		respondError(c, http.StatusConflict, conflictMessage)
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
