package handler

import (
	"AssetVault/config"
	"AssetVault/internal/dto"
	"AssetVault/internal/service"
	"AssetVault/internal/storage"
	"AssetVault/utils"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadMedia stores an uploaded blob and records its media row.
func UploadMedia(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	username := c.MustGet("username").(string)
	media, err := service.UploadMedia(c.Request.Context(), userID, username, header)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": media})
}

// ListMedia returns a user's media rows.
func ListMedia(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	media, err := service.ListMedia(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list media failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": media})
}

// LinkMedia attaches a media object to an owning record.
func LinkMedia(c *gin.Context) {
	var req dto.MediaLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	if err := service.LinkMedia(c.Request.Context(), userID, req); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// UnlinkMedia detaches a media object from one owner.
func UnlinkMedia(c *gin.Context) {
	var req dto.MediaLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	if err := service.UnlinkMedia(c.Request.Context(), userID, req); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// ListMediaLinks lists a media object's links with owner state.
func ListMediaLinks(c *gin.Context) {
	var req dto.MediaKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	links, err := service.LinksFor(c.Request.Context(), userID, req.StorageKey)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"links": links})
}

// DeleteMedia destroys a media object and all its link rows.
func DeleteMedia(c *gin.Context) {
	var req dto.MediaKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	deleted, err := service.DeleteMedia(c.Request.Context(), userID, req.StorageKey)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MediaDeleteResponse{DeletedLinkCount: deleted})
}

// BatchDeleteMedia destroys several media objects, absorbing per-key
// failures.
func BatchDeleteMedia(c *gin.Context) {
	var req dto.MediaBulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	deletedLinks, report := service.BulkDeleteMedia(c.Request.Context(), userID, req.StorageKeys, nil)

	message := fmt.Sprintf("Deleted %d object(s).", report.Succeeded)
	if report.Failed > 0 {
		message = fmt.Sprintf("Deleted %d object(s). %d failed.", report.Succeeded, report.Failed)
	}
	c.JSON(http.StatusOK, dto.MediaBulkDeleteResponse{
		DeletedCount: report.Succeeded,
		DeletedLinks: deletedLinks,
		Failed:       report.Failed,
		Message:      message,
	})
}

// CleanupMediaLinks removes link rows whose owner no longer exists.
func CleanupMediaLinks(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	removed, err := service.CleanupOrphanedLinks(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// StorageUsage reports derived quota usage for the current user.
func StorageUsage(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	used, err := service.StorageUsage(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "usage failed: " + err.Error()})
		return
	}
	quota, err := service.UserQuota(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "usage failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.StorageUsageResponse{
		UsedBytes:  used,
		QuotaBytes: quota,
	})
}

// StreamMedia streams a media object through the backend.
func StreamMedia(c *gin.Context) {
	var req dto.MediaKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	media, err := service.GetMediaByKey(c.Request.Context(), userID, req.StorageKey)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if storage.Default == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "object storage is not initialized"})
		return
	}
	object, info, err := storage.Default.GetObject(c.Request.Context(), media.BucketName, media.StorageKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch object failed: " + err.Error()})
		return
	}
	defer object.Close()

	name := utils.SanitizeHeaderFilename(media.FileName)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", name))
	contentType := media.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, info.Size, contentType, object, nil)
}

// MediaDownloadURL returns a short-lived presigned download link.
func MediaDownloadURL(c *gin.Context) {
	var req dto.MediaKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	url, err := service.MediaDownloadURL(c.Request.Context(), userID, req.StorageKey)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":    url,
		"bucket": config.AppConfig.BucketName,
	})
}
