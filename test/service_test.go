package test

import (
	"AssetVault/config"
	"AssetVault/internal/repo"
	"AssetVault/internal/service"
	"AssetVault/internal/storage"
	"AssetVault/model"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"golang.org/x/net/context"
)

// ensureTestBucket ensures the test bucket exists.
func ensureTestBucket() {
	ctx := context.Background()
	exists, err := storage.MinioTest.Client.BucketExists(ctx, storage.MinioTest.Bucket)
	if err != nil {
		panic(err)
	}
	if !exists {
		err = storage.MinioTest.Client.MakeBucket(ctx, storage.MinioTest.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			panic(err)
		}
	}
}

// TestMain sets up the test environment.
func TestMain(m *testing.M) {
	config.InitConfig()
	repo.InitMysqlTest()
	storage.InitMinioTest()
	// services always go through Default; point it at the test bucket
	storage.Default = storage.DefaultTest
	repo.InitRedis()
	log.Println("[testmain] redis db =", repo.Redis.Options().DB)

	ensureTestBucket()

	cleanupAllTables()

	code := m.Run()
	os.Exit(code)
}

// cleanupAllTables wipes table data without dropping schema.
func cleanupAllTables() {
	repo.Db.Exec("SET FOREIGN_KEY_CHECKS = 0")

	tables := []string{
		"purge_task",
		"media_link",
		"media_object",
		"asset",
		"inventory_item",
		"user_db",
	}
	for _, table := range tables {
		repo.Db.Exec("DELETE FROM " + table)
	}

	repo.Db.Exec("SET FOREIGN_KEY_CHECKS = 1")

	log.Println("[testmain] all tables cleaned")
}

func cleanTables(t *testing.T) {
	repo.Db.Exec("SET FOREIGN_KEY_CHECKS = 0")

	tables := []string{"purge_task", "media_link", "media_object", "asset", "inventory_item", "user_db"}
	for _, table := range tables {
		if err := repo.Db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("clean %s failed: %v", table, err)
		}
	}

	repo.Db.Exec("SET FOREIGN_KEY_CHECKS = 1")
}

func createTestUser(t *testing.T) *model.User {
	user := &model.User{
		UserName: "test_user",
		Password: "123456",
		Email:    "test_user@test.com",
		IsActive: true,
	}
	if err := service.CreateUser(user); err != nil {
		t.Fatal(err)
	}
	return user
}

func createTestAsset(t *testing.T, userID uint64, tag string) *model.Asset {
	asset := &model.Asset{
		UserID:   userID,
		Tag:      tag,
		Name:     "asset " + tag,
		Category: "laptop",
		Location: "office-1",
	}
	if err := repo.Db.Create(asset).Error; err != nil {
		t.Fatal(err)
	}
	return asset
}

func createTestItem(t *testing.T, userID uint64, sku string) *model.InventoryItem {
	item := &model.InventoryItem{
		UserID:     userID,
		SKU:        sku,
		Name:       "item " + sku,
		StockLevel: 10,
		Unit:       "pcs",
	}
	if err := repo.Db.Create(item).Error; err != nil {
		t.Fatal(err)
	}
	return item
}

var mediaSeq int

func createTestMedia(t *testing.T, userID uint64) *model.MediaObject {
	mediaSeq++
	media := &model.MediaObject{
		UserID:     userID,
		StorageKey: fmt.Sprintf("media/test_user/key-%d", mediaSeq),
		BucketName: config.AppConfig.BucketNameTest,
		FileName:   fmt.Sprintf("photo-%d.jpg", mediaSeq),
		MimeType:   "image/jpeg",
		SizeBytes:  1024,
	}
	if err := repo.Db.Create(media).Error; err != nil {
		t.Fatal(err)
	}
	return media
}
