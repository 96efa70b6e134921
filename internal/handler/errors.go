package handler

import (
	"AssetVault/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps service failures onto HTTP statuses. A
// storage-layer refusal is the backend's fault, not the client's, so
// it surfaces as a bad gateway.
func writeServiceError(c *gin.Context, err error) {
	var storageErr *service.StorageDeleteError
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyDeleted), errors.Is(err, service.ErrNotDeleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrQuotaExceeded):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &storageErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
