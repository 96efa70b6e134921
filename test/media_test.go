package test

import (
	"AssetVault/internal/dto"
	"AssetVault/internal/repo"
	"AssetVault/internal/service"
	"AssetVault/internal/storage"
	"AssetVault/model"
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

// failingStore wraps nothing and refuses deletes, to exercise the
// abort path of the deletion resolver.
type failingStore struct {
	removeErr error
	removed   int
}

func (s *failingStore) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts storage.PutOptions) error {
	return nil
}

func (s *failingStore) GetObject(ctx context.Context, bucket, object string) (io.ReadCloser, storage.ObjectInfo, error) {
	return nil, storage.ObjectInfo{}, errors.New("not implemented")
}

func (s *failingStore) RemoveObject(ctx context.Context, bucket, object string) error {
	s.removed++
	return s.removeErr
}

func (s *failingStore) PresignedGetObject(ctx context.Context, bucket, object string, expiry time.Duration) (string, error) {
	return "", errors.New("not implemented")
}

func swapStore(t *testing.T, store storage.Store) {
	previous := storage.Default
	storage.Default = store
	t.Cleanup(func() {
		storage.Default = previous
	})
}

func linkMedia(t *testing.T, userID uint64, key, kind string, ownerID uint64) {
	err := service.LinkMedia(context.Background(), userID, dto.MediaLinkRequest{
		StorageKey: key,
		OwnerKind:  kind,
		OwnerID:    ownerID,
	})
	if err != nil {
		t.Fatalf("LinkMedia failed: %v", err)
	}
}

func countLinks(t *testing.T, key string) int64 {
	var count int64
	if err := repo.Db.Model(&model.MediaLink{}).
		Where("media_storage_key = ?", key).
		Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	return count
}

func TestLinkMediaIsIdempotent(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-M1")
	media := createTestMedia(t, user.ID)

	linkMedia(t, user.ID, media.StorageKey, model.OwnerKindAsset, asset.ID)
	linkMedia(t, user.ID, media.StorageKey, model.OwnerKindAsset, asset.ID)

	if count := countLinks(t, media.StorageKey); count != 1 {
		t.Fatalf("duplicate link should collapse to 1 row, got %d", count)
	}
}

func TestUnlinkMediaIsIdempotent(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-M0")
	media := createTestMedia(t, user.ID)

	linkMedia(t, user.ID, media.StorageKey, model.OwnerKindAsset, asset.ID)

	req := dto.MediaLinkRequest{
		StorageKey: media.StorageKey,
		OwnerKind:  model.OwnerKindAsset,
		OwnerID:    asset.ID,
	}
	if err := service.UnlinkMedia(context.Background(), user.ID, req); err != nil {
		t.Fatalf("UnlinkMedia failed: %v", err)
	}
	if count := countLinks(t, media.StorageKey); count != 0 {
		t.Fatalf("link should be gone, got %d", count)
	}

	// retrying after the row is gone still succeeds
	if err := service.UnlinkMedia(context.Background(), user.ID, req); err != nil {
		t.Fatalf("repeated unlink should be a no-op success, got %v", err)
	}
}

func TestDeleteMediaCascadesLinks(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-M2")
	item := createTestItem(t, user.ID, "SKU-M2")
	media := createTestMedia(t, user.ID)

	linkMedia(t, user.ID, media.StorageKey, model.OwnerKindAsset, asset.ID)
	linkMedia(t, user.ID, media.StorageKey, model.OwnerKindItem, item.ID)

	// the blob was never uploaded; an absent object still counts as
	// successfully deleted
	deleted, err := service.DeleteMedia(context.Background(), user.ID, media.StorageKey)
	if err != nil {
		t.Fatalf("DeleteMedia failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 cascaded links, got %d", deleted)
	}
	if count := countLinks(t, media.StorageKey); count != 0 {
		t.Fatalf("links should be gone, got %d", count)
	}

	var rows int64
	repo.Db.Model(&model.MediaObject{}).Where("storage_key = ?", media.StorageKey).Count(&rows)
	if rows != 0 {
		t.Fatal("media row should be gone after delete")
	}

	_, err = service.DeleteMedia(context.Background(), user.ID, media.StorageKey)
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDeleteMediaAbortsWhenStorageFails(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-M3")
	media := createTestMedia(t, user.ID)

	linkMedia(t, user.ID, media.StorageKey, model.OwnerKindAsset, asset.ID)

	stub := &failingStore{removeErr: errors.New("backend unavailable")}
	swapStore(t, stub)

	_, err := service.DeleteMedia(context.Background(), user.ID, media.StorageKey)
	var storageErr *service.StorageDeleteError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageDeleteError, got %v", err)
	}
	if stub.removed != 1 {
		t.Fatalf("blob delete should be attempted exactly once, got %d", stub.removed)
	}

	// the abort must leave both the links and the media row untouched
	if count := countLinks(t, media.StorageKey); count != 1 {
		t.Fatalf("links must survive a failed blob delete, got %d", count)
	}
	if _, err := service.GetMediaByKey(context.Background(), user.ID, media.StorageKey); err != nil {
		t.Fatalf("media row must survive a failed blob delete: %v", err)
	}
}

func TestLinksForReportsOwnerState(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-M4")
	media := createTestMedia(t, user.ID)

	linkMedia(t, user.ID, media.StorageKey, model.OwnerKindAsset, asset.ID)

	links, err := service.LinksFor(context.Background(), user.ID, media.StorageKey)
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 1 || links[0].OwnerIsDeleted || links[0].OwnerMissing {
		t.Fatalf("active owner should report clean state, got %+v", links)
	}

	if _, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, asset.ID); err != nil {
		t.Fatal(err)
	}
	links, err = service.LinksFor(context.Background(), user.ID, media.StorageKey)
	if err != nil {
		t.Fatal(err)
	}
	if !links[0].OwnerIsDeleted {
		t.Fatal("trashed owner should be reported as deleted")
	}

	if err := service.PurgeOwner(model.OwnerKindAsset, user.ID, asset.ID); err != nil {
		t.Fatal(err)
	}
	links, err = service.LinksFor(context.Background(), user.ID, media.StorageKey)
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 1 || !links[0].OwnerMissing {
		t.Fatalf("purged owner should leave a visible orphan link, got %+v", links)
	}
}

func TestCleanupOrphanedLinks(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-M5")
	item := createTestItem(t, user.ID, "SKU-M5")
	media := createTestMedia(t, user.ID)

	linkMedia(t, user.ID, media.StorageKey, model.OwnerKindAsset, asset.ID)
	linkMedia(t, user.ID, media.StorageKey, model.OwnerKindItem, item.ID)

	if _, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, asset.ID); err != nil {
		t.Fatal(err)
	}
	if err := service.PurgeOwner(model.OwnerKindAsset, user.ID, asset.ID); err != nil {
		t.Fatal(err)
	}

	removed, err := service.CleanupOrphanedLinks(user.ID)
	if err != nil {
		t.Fatalf("CleanupOrphanedLinks failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 orphan removed, got %d", removed)
	}
	if count := countLinks(t, media.StorageKey); count != 1 {
		t.Fatalf("live owner link should survive cleanup, got %d", count)
	}
}

func TestBulkDeleteMediaSkipsMissingKeys(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-M6")
	first := createTestMedia(t, user.ID)
	second := createTestMedia(t, user.ID)

	linkMedia(t, user.ID, first.StorageKey, model.OwnerKindAsset, asset.ID)

	keys := []string{first.StorageKey, "media/test_user/no-such-key", second.StorageKey}
	deletedLinks, report := service.BulkDeleteMedia(context.Background(), user.ID, keys, nil)

	if report.Succeeded != 3 || report.Failed != 0 || report.Total != 3 {
		t.Fatalf("missing key should count as no-op success, got %+v", report)
	}
	if deletedLinks != 1 {
		t.Fatalf("expected 1 cascaded link in total, got %d", deletedLinks)
	}
}

func TestStorageUsageIsDerived(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	first := createTestMedia(t, user.ID)
	second := createTestMedia(t, user.ID)

	used, err := service.StorageUsage(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if used != first.SizeBytes+second.SizeBytes {
		t.Fatalf("usage should sum live rows, got %d", used)
	}

	if _, err := service.DeleteMedia(context.Background(), user.ID, first.StorageKey); err != nil {
		t.Fatal(err)
	}

	used, err = service.StorageUsage(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if used != second.SizeBytes {
		t.Fatalf("deleting media should free space immediately, got %d", used)
	}
}
