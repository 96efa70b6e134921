package handler

import (
	"AssetVault/internal/dto"
	"AssetVault/internal/service"
	"AssetVault/model"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CreateAsset registers a new asset.
func CreateAsset(c *gin.Context) {
	var req dto.AssetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	asset, err := service.CreateAsset(userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create asset failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// GetAsset returns one active asset.
func GetAsset(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("assetID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	asset, err := service.GetAsset(userID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// UpdateAsset applies a partial update to an asset.
func UpdateAsset(c *gin.Context) {
	var req dto.AssetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	asset, err := service.UpdateAsset(userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// SearchAssets returns active assets matching a name or tag query.
func SearchAssets(c *gin.Context) {
	var req dto.OwnerListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query missing"})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	assets, total, err := service.ListAssets(userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search assets failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assets": assets,
		"total":  total,
	})
}

// DeleteAssets moves the selected assets to the trash.
func DeleteAssets(c *gin.Context) {
	var req struct {
		IDs []uint64 `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	report := service.BulkSoftDelete(model.OwnerKindAsset, userID, req.IDs, nil)
	c.JSON(http.StatusOK, bulkResponse("Trashed", report))
}

// ListAssets returns a page of active assets.
func ListAssets(c *gin.Context) {
	var req dto.OwnerListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	assets, total, err := service.ListAssets(userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list assets failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assets": assets,
		"total":  total,
	})
}
