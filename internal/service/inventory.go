package service

import (
	"AssetVault/internal/dto"
	"AssetVault/internal/repo"
	"AssetVault/model"
	"AssetVault/utils"
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// CreateItem registers a new inventory item in the active state.
func CreateItem(userID uint64, req dto.ItemCreateRequest) (*model.InventoryItem, error) {
	item := &model.InventoryItem{
		UserID:           userID,
		SKU:              req.SKU,
		Name:             req.Name,
		StockLevel:       req.StockLevel,
		Unit:             req.Unit,
		ReorderThreshold: req.ReorderThreshold,
	}
	if err := repo.Db.Create(item).Error; err != nil {
		return nil, err
	}
	invalidateOwnerListCache(model.OwnerKindItem, userID)
	return item, nil
}

// GetItem returns one active inventory item.
func GetItem(userID, id uint64) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := repo.Db.
		Where("id = ? AND user_id = ? AND is_deleted = 0", id, userID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies a partial update to an active inventory item.
func UpdateItem(userID uint64, req dto.ItemUpdateRequest) (*model.InventoryItem, error) {
	item, err := GetItem(userID, req.ID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.StockLevel != nil {
		updates["stock_level"] = *req.StockLevel
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.ReorderThreshold != nil {
		updates["reorder_threshold"] = *req.ReorderThreshold
	}
	if len(updates) == 0 {
		return item, nil
	}
	res := repo.Db.Model(&model.InventoryItem{}).
		Where("id = ? AND user_id = ? AND is_deleted = 0", req.ID, userID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	invalidateOwnerListCache(model.OwnerKindItem, userID)
	return GetItem(userID, req.ID)
}

// ListItems returns a page of active inventory items.
func ListItems(userID uint64, req dto.OwnerListRequest) ([]model.InventoryItem, int64, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)
	orderBy := sanitizeOrderBy(req.OrderBy)
	if orderBy == "" {
		orderBy = "created_at"
	}

	ctx := context.Background()
	cacheable := req.Query == ""
	if cacheable {
		if cached, ok := utils.GetOwnerListFromCache(ctx, model.OwnerKindItem, userID, page, pageSize, orderBy, req.OrderDesc); ok {
			var items []model.InventoryItem
			if err := json.Unmarshal(cached.Records, &items); err == nil {
				return items, cached.Total, nil
			}
		}
	}

	q := repo.Db.Model(&model.InventoryItem{}).Where("user_id = ? AND is_deleted = 0", userID)
	if req.Query != "" {
		like := "%" + req.Query + "%"
		q = q.Where("name LIKE ? OR sku LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := orderBy
	if req.OrderDesc {
		order += " DESC"
	}
	var items []model.InventoryItem
	err := q.Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	if cacheable {
		if raw, err := json.Marshal(items); err == nil {
			_ = utils.SetOwnerListToCache(ctx, model.OwnerKindItem, userID, page, pageSize, orderBy, req.OrderDesc,
				&utils.OwnerListCache{Records: raw, Total: total}, listCacheTTL)
		}
	}
	return items, total, nil
}

// LowStockItems returns active items at or below their reorder
// threshold, most depleted first.
func LowStockItems(userID uint64) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := repo.Db.
		Where("user_id = ? AND is_deleted = 0 AND reorder_threshold > 0 AND stock_level <= reorder_threshold", userID).
		Order("stock_level ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AdjustStock changes an item's stock level by delta, refusing to go
// below zero.
func AdjustStock(userID, id uint64, delta int64) (*model.InventoryItem, error) {
	item, err := GetItem(userID, id)
	if err != nil {
		return nil, err
	}
	next := item.StockLevel + delta
	if next < 0 {
		return nil, errors.New("stock level cannot go negative")
	}
	res := repo.Db.Model(&model.InventoryItem{}).
		Where("id = ? AND user_id = ? AND is_deleted = 0 AND stock_level = ?", id, userID, item.StockLevel).
		Update("stock_level", next)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errors.New("stock level changed concurrently, retry")
	}
	item.StockLevel = next
	invalidateOwnerListCache(model.OwnerKindItem, userID)
	return item, nil
}
