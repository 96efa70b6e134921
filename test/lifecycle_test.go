package test

import (
	"AssetVault/internal/repo"
	"AssetVault/internal/service"
	"AssetVault/model"
	"errors"
	"testing"
	"time"
)

func TestSoftDeleteAndRestoreRoundTrip(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-001")

	trashed, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, asset.ID)
	if err != nil {
		t.Fatalf("SoftDeleteOwner failed: %v", err)
	}
	if !trashed.Trash().IsDeleted {
		t.Fatal("record should be flagged deleted after trash")
	}
	if trashed.Trash().DeletedAt == nil {
		t.Fatal("deleted_at should be set after trash")
	}

	restored, err := service.RestoreOwner(model.OwnerKindAsset, user.ID, asset.ID)
	if err != nil {
		t.Fatalf("RestoreOwner failed: %v", err)
	}
	if restored.Trash().IsDeleted {
		t.Fatal("record should not be flagged deleted after restore")
	}
	if restored.Trash().DeletedAt != nil {
		t.Fatal("deleted_at should be cleared after restore")
	}

	var fresh model.Asset
	if err := repo.Db.Where("id = ?", asset.ID).First(&fresh).Error; err != nil {
		t.Fatal(err)
	}
	if fresh.IsDeleted || fresh.DeletedAt != nil {
		t.Fatal("restore should fully reset trash state in the database")
	}
}

func TestSoftDeleteTwiceFails(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-002")

	if _, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, asset.ID); err != nil {
		t.Fatal(err)
	}
	_, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, asset.ID)
	if !errors.Is(err, service.ErrAlreadyDeleted) {
		t.Fatalf("expected ErrAlreadyDeleted, got %v", err)
	}
}

func TestRestoreActiveFails(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	item := createTestItem(t, user.ID, "SKU-001")

	_, err := service.RestoreOwner(model.OwnerKindItem, user.ID, item.ID)
	if !errors.Is(err, service.ErrNotDeleted) {
		t.Fatalf("expected ErrNotDeleted, got %v", err)
	}
}

func TestPurgeActiveFailsAndLeavesRecord(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-003")

	err := service.PurgeOwner(model.OwnerKindAsset, user.ID, asset.ID)
	if !errors.Is(err, service.ErrNotDeleted) {
		t.Fatalf("expected ErrNotDeleted, got %v", err)
	}

	var count int64
	repo.Db.Model(&model.Asset{}).Where("id = ?", asset.ID).Count(&count)
	if count != 1 {
		t.Fatal("refused purge must not remove the record")
	}
}

func TestPurgeTrashedThenGone(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-004")

	if _, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, asset.ID); err != nil {
		t.Fatal(err)
	}
	if err := service.PurgeOwner(model.OwnerKindAsset, user.ID, asset.ID); err != nil {
		t.Fatalf("PurgeOwner failed: %v", err)
	}

	err := service.PurgeOwner(model.OwnerKindAsset, user.ID, asset.ID)
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second purge, got %v", err)
	}
}

func TestDaysRemainingClamp(t *testing.T) {
	if got := service.DaysRemaining(nil); got != service.RetentionDays {
		t.Fatalf("nil deleted_at should return the full window, got %d", got)
	}

	recent := time.Now().Add(-10 * 24 * time.Hour)
	if got := service.DaysRemaining(&recent); got != 20 {
		t.Fatalf("10 days elapsed should leave 20, got %d", got)
	}
	if service.IsOverdue(&recent) {
		t.Fatal("10 day old entry should not be overdue")
	}

	old := time.Now().Add(-35 * 24 * time.Hour)
	if got := service.DaysRemaining(&old); got != 0 {
		t.Fatalf("elapsed window should clamp at 0, got %d", got)
	}
	if !service.IsOverdue(&old) {
		t.Fatal("35 day old entry should be overdue")
	}
}

func TestListTrashedReportsRetention(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-005")
	active := createTestAsset(t, user.ID, "AST-006")

	if _, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, asset.ID); err != nil {
		t.Fatal(err)
	}

	entries, err := service.ListTrashed(model.OwnerKindAsset, user.ID, "", "", false)
	if err != nil {
		t.Fatalf("ListTrashed failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 trashed entry, got %d", len(entries))
	}
	if entries[0].Overdue {
		t.Fatal("fresh trash entry should not be overdue")
	}
	if entries[0].DaysRemaining != service.RetentionDays {
		t.Fatalf("fresh trash entry should have the full window, got %d", entries[0].DaysRemaining)
	}

	if _, err := service.GetAsset(user.ID, active.ID); err != nil {
		t.Fatalf("active record should stay visible: %v", err)
	}
	if _, err := service.GetAsset(user.ID, asset.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("trashed record should not be visible in active reads, got %v", err)
	}
}

func TestListTrashedOrdering(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)

	older := createTestAsset(t, user.ID, "AST-O1")
	older.Name = "zulu"
	newer := createTestAsset(t, user.ID, "AST-O2")
	newer.Name = "alpha"
	for _, a := range []*model.Asset{older, newer} {
		if err := repo.Db.Model(&model.Asset{}).Where("id = ?", a.ID).Update("name", a.Name).Error; err != nil {
			t.Fatal(err)
		}
		if _, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, a.ID); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := repo.Db.Model(&model.Asset{}).
		Where("id = ?", older.ID).
		Update("deleted_at", &past).Error; err != nil {
		t.Fatal(err)
	}

	entries, err := service.ListTrashed(model.OwnerKindAsset, user.ID, "", "", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Record.(*model.Asset).ID != newer.ID {
		t.Fatal("default order should put the most recently deleted first")
	}

	entries, err = service.ListTrashed(model.OwnerKindAsset, user.ID, "", "name", false)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Record.(*model.Asset).Name != "alpha" {
		t.Fatalf("name ordering should apply, got %q first", entries[0].Record.(*model.Asset).Name)
	}
}

func TestListOverdueIDs(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	fresh := createTestAsset(t, user.ID, "AST-007")
	stale := createTestAsset(t, user.ID, "AST-008")

	for _, a := range []*model.Asset{fresh, stale} {
		if _, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, a.ID); err != nil {
			t.Fatal(err)
		}
	}

	past := time.Now().Add(-35 * 24 * time.Hour)
	if err := repo.Db.Model(&model.Asset{}).
		Where("id = ?", stale.ID).
		Update("deleted_at", &past).Error; err != nil {
		t.Fatal(err)
	}

	ids, err := service.ListOverdueIDs(model.OwnerKindAsset, user.ID)
	if err != nil {
		t.Fatalf("ListOverdueIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != stale.ID {
		t.Fatalf("expected only the stale id %d, got %v", stale.ID, ids)
	}
}
