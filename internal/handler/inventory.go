package handler

import (
	"AssetVault/internal/dto"
	"AssetVault/internal/service"
	"AssetVault/model"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CreateItem registers a new inventory item.
func CreateItem(c *gin.Context) {
	var req dto.ItemCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	item, err := service.CreateItem(userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create item failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// GetItem returns one active inventory item.
func GetItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("itemID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	item, err := service.GetItem(userID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateItem applies a partial update to an inventory item.
func UpdateItem(c *gin.Context) {
	var req dto.ItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	item, err := service.UpdateItem(userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// ListItems returns a page of active inventory items.
func ListItems(c *gin.Context) {
	var req dto.OwnerListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	items, total, err := service.ListItems(userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list items failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
	})
}

// SearchItems returns active items matching a name or SKU query.
func SearchItems(c *gin.Context) {
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
	items, total, err := service.ListItems(userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search items failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
	})
}

// DeleteItems moves the selected inventory items to the trash.
func DeleteItems(c *gin.Context) {
	var req struct {
		IDs []uint64 `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	report := service.BulkSoftDelete(model.OwnerKindItem, userID, req.IDs, nil)
	c.JSON(http.StatusOK, bulkResponse("Trashed", report))
}

// ListLowStockItems returns items at or below their reorder threshold.
func ListLowStockItems(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	items, err := service.LowStockItems(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list low stock failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AdjustStock changes an item's stock level by a signed delta.
func AdjustStock(c *gin.Context) {
	var req struct {
		ID    uint64 `json:"id" binding:"required"`
		Delta int64  `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	item, err := service.AdjustStock(userID, req.ID, req.Delta)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}
