package router

import (
	"AssetVault/internal/handler"
	"AssetVault/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/register", handler.Register)
		api.GET("/activate", handler.Activate)
		api.POST("/login", handler.Login)

		auth := api.Group("")
		auth.Use(utils.AuthMiddleware())

		asset := auth.Group("/asset")
		{
			asset.POST("/create", handler.CreateAsset)
			asset.POST("/list", handler.ListAssets)
			asset.POST("/search", handler.SearchAssets)
			asset.POST("/update", handler.UpdateAsset)
			asset.POST("/delete", handler.DeleteAssets)
			asset.GET("/:assetID", handler.GetAsset)
		}

		item := auth.Group("/item")
		{
			item.POST("/create", handler.CreateItem)
			item.POST("/list", handler.ListItems)
			item.POST("/search", handler.SearchItems)
			item.POST("/update", handler.UpdateItem)
			item.POST("/delete", handler.DeleteItems)
			item.POST("/stock", handler.AdjustStock)
			item.GET("/lowstock", handler.ListLowStockItems)
			item.GET("/:itemID", handler.GetItem)
		}

		trash := auth.Group("/trash")
		{
			trash.POST("/list", handler.ListTrash)
			trash.POST("/delete", handler.TrashRecords)
			trash.POST("/restore", handler.RestoreRecords)
			trash.POST("/purge", handler.PurgeRecords)
			trash.POST("/empty", handler.EmptyTrash)
			trash.POST("/overdue", handler.PurgeOverdue)
			trash.GET("/tasks", handler.ListPurgeTasks)
		}

		media := auth.Group("/media")
		{
			media.POST("/upload", handler.UploadMedia)
			media.GET("/list", handler.ListMedia)
			media.POST("/link", handler.LinkMedia)
			media.POST("/unlink", handler.UnlinkMedia)
			media.POST("/links", handler.ListMediaLinks)
			media.POST("/links/cleanup", handler.CleanupMediaLinks)
			media.POST("/delete", handler.DeleteMedia)
			media.POST("/delete/batch", handler.BatchDeleteMedia)
			media.POST("/download", handler.MediaDownloadURL)
			media.POST("/download/stream", handler.StreamMedia)
			media.GET("/usage", handler.StorageUsage)
		}
	}
	return r
}
