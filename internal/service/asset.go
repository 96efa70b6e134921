package service

import (
	"AssetVault/internal/dto"
	"AssetVault/internal/repo"
	"AssetVault/model"
	"AssetVault/utils"
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

const listCacheTTL = 5 * time.Minute

// CreateAsset registers a new asset in the active state.
func CreateAsset(userID uint64, req dto.AssetCreateRequest) (*model.Asset, error) {
	asset := &model.Asset{
		UserID:       userID,
		Tag:          req.Tag,
		Name:         req.Name,
		Category:     req.Category,
		Location:     req.Location,
		SerialNumber: req.SerialNumber,
	}
	if err := repo.Db.Create(asset).Error; err != nil {
		return nil, err
	}
	invalidateOwnerListCache(model.OwnerKindAsset, userID)
	return asset, nil
}

// GetAsset returns one active asset.
func GetAsset(userID, id uint64) (*model.Asset, error) {
	var asset model.Asset
	err := repo.Db.
		Where("id = ? AND user_id = ? AND is_deleted = 0", id, userID).
		First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateAsset applies a partial update to an active asset. Only the
// fields present in the request change.
func UpdateAsset(userID uint64, req dto.AssetUpdateRequest) (*model.Asset, error) {
	asset, err := GetAsset(userID, req.ID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.SerialNumber != nil {
		updates["serial_number"] = *req.SerialNumber
	}
	if len(updates) == 0 {
		return asset, nil
	}
	res := repo.Db.Model(&model.Asset{}).
		Where("id = ? AND user_id = ? AND is_deleted = 0", req.ID, userID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	invalidateOwnerListCache(model.OwnerKindAsset, userID)
	return GetAsset(userID, req.ID)
}

// ListAssets returns a page of active assets. Pages without a search
// query are served from cache; searches always hit the database.
func ListAssets(userID uint64, req dto.OwnerListRequest) ([]model.Asset, int64, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)
	orderBy := sanitizeOrderBy(req.OrderBy)
	if orderBy == "" {
		orderBy = "created_at"
	}

	ctx := context.Background()
	cacheable := req.Query == ""
	if cacheable {
		if cached, ok := utils.GetOwnerListFromCache(ctx, model.OwnerKindAsset, userID, page, pageSize, orderBy, req.OrderDesc); ok {
			var assets []model.Asset
			if err := json.Unmarshal(cached.Records, &assets); err == nil {
				return assets, cached.Total, nil
			}
		}
	}

	q := repo.Db.Model(&model.Asset{}).Where("user_id = ? AND is_deleted = 0", userID)
	if req.Query != "" {
		like := "%" + req.Query + "%"
		q = q.Where("name LIKE ? OR tag LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := orderBy
	if req.OrderDesc {
		order += " DESC"
	}
	var assets []model.Asset
	err := q.Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&assets).Error
	if err != nil {
		return nil, 0, err
	}

	if cacheable {
		if raw, err := json.Marshal(assets); err == nil {
			_ = utils.SetOwnerListToCache(ctx, model.OwnerKindAsset, userID, page, pageSize, orderBy, req.OrderDesc,
				&utils.OwnerListCache{Records: raw, Total: total}, listCacheTTL)
		}
	}
	return assets, total, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return page, pageSize
}
