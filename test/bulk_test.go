package test

import (
	"AssetVault/internal/service"
	"AssetVault/model"
	"errors"
	"testing"
)

func TestRunBulkAbsorbsFailures(t *testing.T) {
	boom := errors.New("boom")
	report := service.RunBulk([]int{1, 2, 3}, func(n int) error {
		if n == 2 {
			return boom
		}
		return nil
	}, nil)

	if report.Succeeded != 2 || report.Failed != 1 || report.Total != 3 {
		t.Fatalf("expected {2 1 3}, got %+v", report)
	}
}

func TestRunBulkProgressIsMonotonic(t *testing.T) {
	var seen []int
	service.RunBulk([]int{10, 20, 30, 40}, func(int) error {
		return nil
	}, func(p service.BulkProgress) {
		seen = append(seen, p.Current)
		if p.Total != 4 {
			t.Fatalf("total should stay 4, got %d", p.Total)
		}
	})

	if len(seen) != 4 {
		t.Fatalf("expected 4 progress calls, got %d", len(seen))
	}
	for i, current := range seen {
		if current != i+1 {
			t.Fatalf("progress should advance one item at a time, got %v", seen)
		}
	}
}

func TestBulkRestoreContinuesPastFailures(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)

	first := createTestItem(t, user.ID, "SKU-B1")
	second := createTestItem(t, user.ID, "SKU-B2")
	third := createTestItem(t, user.ID, "SKU-B3")

	// second stays active so its restore fails mid-batch
	for _, item := range []*model.InventoryItem{first, third} {
		if _, err := service.SoftDeleteOwner(model.OwnerKindItem, user.ID, item.ID); err != nil {
			t.Fatal(err)
		}
	}

	ids := []uint64{first.ID, second.ID, third.ID}
	report := service.BulkRestore(model.OwnerKindItem, user.ID, ids, nil)

	if report.Succeeded != 2 || report.Failed != 1 || report.Total != 3 {
		t.Fatalf("expected {2 1 3}, got %+v", report)
	}
	for _, id := range []uint64{first.ID, third.ID} {
		if _, err := service.GetItem(user.ID, id); err != nil {
			t.Fatalf("item %d should be active after restore: %v", id, err)
		}
	}
}

func TestBulkSoftDeleteTreatsTrashedAsSuccess(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)

	first := createTestAsset(t, user.ID, "AST-B1")
	second := createTestAsset(t, user.ID, "AST-B2")

	if _, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, first.ID); err != nil {
		t.Fatal(err)
	}

	report := service.BulkSoftDelete(model.OwnerKindAsset, user.ID, []uint64{first.ID, second.ID}, nil)
	if report.Succeeded != 2 || report.Failed != 0 {
		t.Fatalf("already-trashed id should count as success, got %+v", report)
	}
}

func TestBulkPurgeTreatsMissingAsSuccess(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)

	asset := createTestAsset(t, user.ID, "AST-B3")
	if _, err := service.SoftDeleteOwner(model.OwnerKindAsset, user.ID, asset.ID); err != nil {
		t.Fatal(err)
	}

	report := service.BulkPurge(model.OwnerKindAsset, user.ID, []uint64{asset.ID, 999999}, nil)
	if report.Succeeded != 2 || report.Failed != 0 {
		t.Fatalf("missing id should count as success, got %+v", report)
	}
}
