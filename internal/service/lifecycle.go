package service

import (
	"AssetVault/internal/dto"
	"AssetVault/internal/repo"
	"AssetVault/model"
	"AssetVault/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RetentionDays is the trash retention window. A trashed record is
// restorable until the window elapses, then it is eligible for purge.
// Purge is always caller-invoked; nothing here runs on a timer.
const RetentionDays = 30

// newOwner returns an empty record of the given owner kind.
func newOwner(kind string) (model.OwnerRecord, error) {
	switch kind {
	case model.OwnerKindAsset:
		return &model.Asset{}, nil
	case model.OwnerKindItem:
		return &model.InventoryItem{}, nil
	default:
		return nil, fmt.Errorf("unknown owner kind %q", kind)
	}
}

// ValidOwnerKind reports whether kind names an owning record type.
func ValidOwnerKind(kind string) bool {
	_, err := newOwner(kind)
	return err == nil
}

// getOwner loads an owning record for a user regardless of trash state.
func getOwner(kind string, userID, id uint64) (model.OwnerRecord, error) {
	rec, err := newOwner(kind)
	if err != nil {
		return nil, err
	}
	err = repo.Db.Where("id = ? AND user_id = ?", id, userID).First(rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// getOwnerAny loads an owning record by id only, used when resolving
// link rows back to their owners.
func getOwnerAny(kind string, id uint64) (model.OwnerRecord, error) {
	rec, err := newOwner(kind)
	if err != nil {
		return nil, err
	}
	err = repo.Db.Where("id = ?", id).First(rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func invalidateOwnerListCache(kind string, userID uint64) {
	_ = utils.InvalidateOwnerListCache(context.Background(), kind, userID)
}

// SoftDeleteOwner moves a record to the trash. The precondition check
// and the mutation are one conditional update, so a concurrent caller
// losing the race gets ErrAlreadyDeleted instead of overwriting the
// deleted_at stamp.
func SoftDeleteOwner(kind string, userID, id uint64) (model.OwnerRecord, error) {
	rec, err := getOwner(kind, userID, id)
	if err != nil {
		return nil, err
	}
	if rec.Trash().IsDeleted {
		return nil, ErrAlreadyDeleted
	}
	now := time.Now()
	res := repo.Db.Model(rec).
		Where("id = ? AND user_id = ? AND is_deleted = 0", id, userID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": &now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyDeleted
	}
	rec.Trash().MarkDeleted(now)
	invalidateOwnerListCache(kind, userID)
	return rec, nil
}

// RestoreOwner moves a trashed record back to active, clearing both
// the flag and the timestamp.
func RestoreOwner(kind string, userID, id uint64) (model.OwnerRecord, error) {
	rec, err := getOwner(kind, userID, id)
	if err != nil {
		return nil, err
	}
	if !rec.Trash().IsDeleted {
		return nil, ErrNotDeleted
	}
	res := repo.Db.Model(rec).
		Where("id = ? AND user_id = ? AND is_deleted = 1", id, userID).
		Updates(map[string]interface{}{
			"is_deleted": false,
			"deleted_at": nil,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotDeleted
	}
	rec.Trash().MarkRestored()
	invalidateOwnerListCache(kind, userID)
	return rec, nil
}

// PurgeOwner permanently removes a trashed record. Purging an active
// record is refused so destruction always goes through an explicit
// trash step first. Media links referencing the owner are left behind
// as orphans; CleanupOrphanedLinks removes them separately, because a
// shared media object must never be destroyed by one owner's purge.
func PurgeOwner(kind string, userID, id uint64) error {
	rec, err := getOwner(kind, userID, id)
	if err != nil {
		return err
	}
	if !rec.Trash().IsDeleted {
		return ErrNotDeleted
	}
	res := repo.Db.
		Where("id = ? AND user_id = ? AND is_deleted = 1", id, userID).
		Delete(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// another caller purged it between the read and the delete
		return ErrNotFound
	}
	invalidateOwnerListCache(kind, userID)
	return nil
}

// DaysRemaining returns how many days of the retention window are left
// for the given deletion time, clamped at zero. Computed per call so it
// never goes stale.
func DaysRemaining(deletedAt *time.Time) int {
	return daysRemainingAt(deletedAt, time.Now())
}

func daysRemainingAt(deletedAt *time.Time, now time.Time) int {
	if deletedAt == nil {
		return RetentionDays
	}
	elapsed := int(now.Sub(*deletedAt).Hours() / 24)
	remaining := RetentionDays - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsOverdue reports whether the retention window has elapsed.
func IsOverdue(deletedAt *time.Time) bool {
	return deletedAt != nil && DaysRemaining(deletedAt) == 0
}

func trashedQuery(kind string, userID uint64, query string) (*gorm.DB, error) {
	rec, err := newOwner(kind)
	if err != nil {
		return nil, err
	}
	q := repo.Db.Model(rec).Where("user_id = ? AND is_deleted = 1", userID)
	if query != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", query))
	}
	return q, nil
}

// ListTrashed returns trashed records with their computed retention
// state. query filters by name; ordering is caller-specified through
// the column whitelist, defaulting to most recently deleted first.
func ListTrashed(kind string, userID uint64, query, orderBy string, orderDesc bool) ([]dto.TrashEntry, error) {
	q, err := trashedQuery(kind, userID, query)
	if err != nil {
		return nil, err
	}
	order := sanitizeOrderBy(orderBy)
	if order == "" {
		order = "deleted_at"
		orderDesc = true
	}
	if orderDesc {
		order += " DESC"
	}
	q = q.Order(order)

	entries := make([]dto.TrashEntry, 0)
	switch kind {
	case model.OwnerKindAsset:
		var rows []model.Asset
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			entries = append(entries, trashEntry(&rows[i]))
		}
	case model.OwnerKindItem:
		var rows []model.InventoryItem
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			entries = append(entries, trashEntry(&rows[i]))
		}
	}
	return entries, nil
}

func trashEntry(rec model.OwnerRecord) dto.TrashEntry {
	state := rec.Trash()
	return dto.TrashEntry{
		Record:        rec,
		DaysRemaining: DaysRemaining(state.DeletedAt),
		Overdue:       IsOverdue(state.DeletedAt),
	}
}

// ListTrashedIDs returns the ids of every trashed record for a user.
func ListTrashedIDs(kind string, userID uint64) ([]uint64, error) {
	q, err := trashedQuery(kind, userID, "")
	if err != nil {
		return nil, err
	}
	var ids []uint64
	if err := q.Order("deleted_at ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListOverdueIDs returns the ids of trashed records whose retention
// window has elapsed.
func ListOverdueIDs(kind string, userID uint64) ([]uint64, error) {
	q, err := trashedQuery(kind, userID, "")
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().AddDate(0, 0, -RetentionDays)
	var ids []uint64
	if err := q.Where("deleted_at <= ?", cutoff).
		Order("deleted_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
