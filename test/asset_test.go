package test

import (
	"AssetVault/internal/dto"
	"AssetVault/internal/service"
	"AssetVault/model"
	"errors"
	"testing"
)

func TestCreateAndGetAsset(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)

	asset, err := service.CreateAsset(user.ID, dto.AssetCreateRequest{
		Tag:      "AST-C1",
		Name:     "thinkpad",
		Category: "laptop",
		Location: "office-2",
	})
	if err != nil {
		t.Fatalf("CreateAsset failed: %v", err)
	}
	if asset.ID == 0 {
		t.Fatal("asset ID should not be zero after create")
	}

	got, err := service.GetAsset(user.ID, asset.ID)
	if err != nil {
		t.Fatalf("GetAsset failed: %v", err)
	}
	if got.Tag != "AST-C1" || got.Name != "thinkpad" {
		t.Fatalf("unexpected asset %+v", got)
	}
}

func TestUpdateAssetPartial(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-C2")

	name := "renamed"
	updated, err := service.UpdateAsset(user.ID, dto.AssetUpdateRequest{
		ID:   asset.ID,
		Name: &name,
	})
	if err != nil {
		t.Fatalf("UpdateAsset failed: %v", err)
	}
	if updated.Name != "renamed" {
		t.Fatalf("name should change, got %q", updated.Name)
	}
	if updated.Category != asset.Category {
		t.Fatalf("untouched fields should survive, got %q", updated.Category)
	}
}

func TestUpdateTrashedAssetFails(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	asset := createTestAsset(t, user.ID, "AST-C3")

	if _, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, asset.ID); err != nil {
		t.Fatal(err)
	}

	name := "ghost"
	_, err := service.UpdateAsset(user.ID, dto.AssetUpdateRequest{ID: asset.ID, Name: &name})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("trashed asset should not be updatable, got %v", err)
	}
}

func TestListAssetsExcludesTrashed(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)

	kept := createTestAsset(t, user.ID, "AST-C4")
	trashed := createTestAsset(t, user.ID, "AST-C5")
	if _, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, trashed.ID); err != nil {
		t.Fatal(err)
	}

	assets, total, err := service.ListAssets(user.ID, dto.OwnerListRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListAssets failed: %v", err)
	}
	if total != 1 || len(assets) != 1 || assets[0].ID != kept.ID {
		t.Fatalf("only active assets should list, got total=%d assets=%+v", total, assets)
	}
}

func TestAdjustStock(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	item := createTestItem(t, user.ID, "SKU-C1")

	updated, err := service.AdjustStock(user.ID, item.ID, -4)
	if err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}
	if updated.StockLevel != 6 {
		t.Fatalf("expected stock 6, got %d", updated.StockLevel)
	}

	if _, err := service.AdjustStock(user.ID, item.ID, -100); err == nil {
		t.Fatal("stock should not go negative")
	}
}

func TestLowStockItems(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)

	low, err := service.CreateItem(user.ID, dto.ItemCreateRequest{
		SKU:              "SKU-C2",
		Name:             "cable",
		StockLevel:       2,
		ReorderThreshold: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := service.CreateItem(user.ID, dto.ItemCreateRequest{
		SKU:              "SKU-C3",
		Name:             "adapter",
		StockLevel:       50,
		ReorderThreshold: 5,
	}); err != nil {
		t.Fatal(err)
	}

	items, err := service.LowStockItems(user.ID)
	if err != nil {
		t.Fatalf("LowStockItems failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != low.ID {
		t.Fatalf("expected only the depleted item, got %+v", items)
	}
}
