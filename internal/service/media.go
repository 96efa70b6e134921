package service

import (
	"AssetVault/config"
	"AssetVault/internal/dto"
	"AssetVault/internal/repo"
	"AssetVault/internal/storage"
	"AssetVault/model"
	"AssetVault/utils"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"golang.org/x/net/context"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const mediaCacheTTL = 10 * time.Minute

// BuildStorageKey derives the object key for a fresh upload. The token
// keeps keys unique even when a user uploads the same file name twice.
func BuildStorageKey(username string) string {
	return fmt.Sprintf("media/%s/%s", username, utils.GetToken())
}

func cacheMediaObject(ctx context.Context, media *model.MediaObject) {
	_ = utils.SetMediaObjectToCache(ctx, media.ID, media, mediaCacheTTL)
	_ = utils.SetMediaIDByKey(ctx, media.StorageKey, media.ID, mediaCacheTTL)
}

func dropMediaCache(ctx context.Context, media *model.MediaObject) {
	_ = utils.InvalidateMediaObjectCache(ctx, media.ID)
	_ = utils.InvalidateMediaKeyCache(ctx, media.StorageKey)
}

// GetMediaByKey resolves a media row by its storage key.
func GetMediaByKey(ctx context.Context, userID uint64, storageKey string) (*model.MediaObject, error) {
	if id, ok := utils.GetMediaIDByKey(ctx, storageKey); ok {
		if media, ok := utils.GetMediaObjectFromCache(ctx, id); ok && media.UserID == userID {
			return media, nil
		}
	}
	var media model.MediaObject
	err := repo.Db.
		Where("storage_key = ? AND user_id = ?", storageKey, userID).
		First(&media).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	cacheMediaObject(ctx, &media)
	return &media, nil
}

// StorageUsage sums the bytes of all live media rows for a user. Usage
// is derived, never stored, so it cannot drift from the rows.
func StorageUsage(userID uint64) (int64, error) {
	var used int64
	err := repo.Db.Model(&model.MediaObject{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(size_bytes), 0)").
		Scan(&used).Error
	if err != nil {
		return 0, err
	}
	return used, nil
}

// UploadMedia stores a blob and records its media row. The quota check
// counts live rows only, so deleted media frees space immediately.
func UploadMedia(ctx context.Context, userID uint64, username string, header *multipart.FileHeader) (*model.MediaObject, error) {
	if storage.Default == nil {
		return nil, errors.New("object storage is not initialized")
	}

	quota, err := UserQuota(userID)
	if err != nil {
		return nil, err
	}
	used, err := StorageUsage(userID)
	if err != nil {
		return nil, err
	}
	if used+header.Size > quota {
		return nil, ErrQuotaExceeded
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	storageKey := BuildStorageKey(username)
	bucket := config.AppConfig.BucketName
	mimeType := header.Header.Get("Content-Type")
	if err := storage.Default.PutObject(ctx, bucket, storageKey, file, header.Size, storage.PutOptions{
		ContentType: mimeType,
	}); err != nil {
		return nil, err
	}

	media := &model.MediaObject{
		UserID:     userID,
		StorageKey: storageKey,
		BucketName: bucket,
		FileName:   header.Filename,
		MimeType:   mimeType,
		SizeBytes:  header.Size,
	}
	if err := repo.Db.Create(media).Error; err != nil {
		_ = storage.Default.RemoveObject(ctx, bucket, storageKey)
		return nil, err
	}
	cacheMediaObject(ctx, media)
	return media, nil
}

// LinkMedia attaches a media object to an owning record. Linking the
// same pair twice is a no-op: the unique index absorbs the duplicate
// and exactly one row remains.
func LinkMedia(ctx context.Context, userID uint64, req dto.MediaLinkRequest) error {
	if !ValidOwnerKind(req.OwnerKind) {
		return fmt.Errorf("unknown owner kind %q", req.OwnerKind)
	}
	if _, err := GetMediaByKey(ctx, userID, req.StorageKey); err != nil {
		return err
	}
	if _, err := getOwner(req.OwnerKind, userID, req.OwnerID); err != nil {
		return err
	}
	link := model.MediaLink{
		MediaStorageKey: req.StorageKey,
		OwnerKind:       req.OwnerKind,
		OwnerID:         req.OwnerID,
	}
	return repo.Db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

// UnlinkMedia detaches a media object from one owner. The blob and the
// media row stay, even when this was the last link. An absent pair is a
// no-op success, so retried unlinks stay idempotent.
func UnlinkMedia(ctx context.Context, userID uint64, req dto.MediaLinkRequest) error {
	if _, err := GetMediaByKey(ctx, userID, req.StorageKey); err != nil {
		return err
	}
	return repo.Db.
		Where("media_storage_key = ? AND owner_kind = ? AND owner_id = ?",
			req.StorageKey, req.OwnerKind, req.OwnerID).
		Delete(&model.MediaLink{}).Error
}

// LinksFor lists a media object's link rows with each owner's current
// state. A link whose owner was purged is reported as missing rather
// than hidden, so stale rows stay visible until cleaned up.
func LinksFor(ctx context.Context, userID uint64, storageKey string) ([]dto.MediaLinkInfo, error) {
	if _, err := GetMediaByKey(ctx, userID, storageKey); err != nil {
		return nil, err
	}
	var links []model.MediaLink
	if err := repo.Db.
		Where("media_storage_key = ?", storageKey).
		Order("created_at ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	infos := make([]dto.MediaLinkInfo, 0, len(links))
	for _, link := range links {
		info := dto.MediaLinkInfo{
			OwnerKind: link.OwnerKind,
			OwnerID:   link.OwnerID,
		}
		owner, err := getOwnerAny(link.OwnerKind, link.OwnerID)
		switch {
		case errors.Is(err, ErrNotFound):
			info.OwnerMissing = true
		case err != nil:
			return nil, err
		default:
			info.OwnerIsDeleted = owner.Trash().IsDeleted
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// DeleteMedia destroys a media object and every link row referencing
// it, returning how many links were removed. The physical blob goes
// first: if storage refuses, a StorageDeleteError aborts the whole
// operation and no link row is touched, so the object stays fully
// addressable. An already-absent blob counts as deleted.
func DeleteMedia(ctx context.Context, userID uint64, storageKey string) (int, error) {
	media, err := GetMediaByKey(ctx, userID, storageKey)
	if err != nil {
		return 0, err
	}

	var links []model.MediaLink
	if err := repo.Db.
		Where("media_storage_key = ?", storageKey).
		Find(&links).Error; err != nil {
		return 0, err
	}

	if storage.Default == nil {
		return 0, &StorageDeleteError{Key: storageKey, Err: errors.New("object storage is not initialized")}
	}
	if err := storage.Default.RemoveObject(ctx, media.BucketName, media.StorageKey); err != nil {
		if !storage.IsNotExist(err) {
			return 0, &StorageDeleteError{Key: storageKey, Err: err}
		}
	}

	// links and media row go together or not at all, otherwise the
	// derived usage sum counts a blob that is already gone
	err = repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("media_storage_key = ?", storageKey).
			Delete(&model.MediaLink{}).Error; err != nil {
			return err
		}
		return tx.
			Where("id = ?", media.ID).
			Delete(&model.MediaObject{}).Error
	})
	if err != nil {
		return 0, err
	}

	dropMediaCache(ctx, media)
	return len(links), nil
}

// BulkDeleteMedia deletes each key in turn, absorbing per-key failures.
// A key that no longer exists counts as a no-op success. Returns the
// total number of link rows removed alongside the run report.
func BulkDeleteMedia(ctx context.Context, userID uint64, keys []string, onProgress func(BulkProgress)) (int, BulkReport) {
	deletedLinks := 0
	report := RunBulk(keys, func(key string) error {
		n, err := DeleteMedia(ctx, userID, key)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		deletedLinks += n
		return nil
	}, onProgress)
	return deletedLinks, report
}

// CleanupOrphanedLinks removes link rows whose owning record no longer
// exists. Owner purge leaves these behind on purpose; this is the
// explicit sweep that reclaims them.
func CleanupOrphanedLinks(userID uint64) (int64, error) {
	var removed int64
	for _, kind := range []string{model.OwnerKindAsset, model.OwnerKindItem} {
		rec, err := newOwner(kind)
		if err != nil {
			return removed, err
		}
		table := rec.(interface{ TableName() string }).TableName()
		res := repo.Db.
			Where("owner_kind = ?", kind).
			Where("media_storage_key IN (?)",
				repo.Db.Model(&model.MediaObject{}).Select("storage_key").Where("user_id = ?", userID)).
			Where(fmt.Sprintf("owner_id NOT IN (SELECT id FROM %s)", table)).
			Delete(&model.MediaLink{})
		if res.Error != nil {
			return removed, res.Error
		}
		removed += res.RowsAffected
	}
	return removed, nil
}

// MediaDownloadURL returns a short-lived presigned download link.
func MediaDownloadURL(ctx context.Context, userID uint64, storageKey string) (string, error) {
	media, err := GetMediaByKey(ctx, userID, storageKey)
	if err != nil {
		return "", err
	}
	if storage.Default == nil {
		return "", errors.New("object storage is not initialized")
	}
	return storage.Default.PresignedGetObject(ctx, media.BucketName, media.StorageKey, 15*time.Minute)
}

// ListMedia returns a user's media rows, newest first.
func ListMedia(userID uint64) ([]model.MediaObject, error) {
	var media []model.MediaObject
	err := repo.Db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&media).Error
	if err != nil {
		return nil, err
	}
	return media, nil
}
