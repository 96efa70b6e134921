package handler

import (
	"AssetVault/internal/dto"
	"AssetVault/internal/service"
	"AssetVault/internal/task"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func bulkMessage(verb string, report service.BulkReport) string {
	if report.Failed == 0 {
		return fmt.Sprintf("%s %d item(s).", verb, report.Succeeded)
	}
	return fmt.Sprintf("%s %d item(s). %d failed.", verb, report.Succeeded, report.Failed)
}

func bulkResponse(verb string, report service.BulkReport) dto.BulkReportResponse {
	return dto.BulkReportResponse{
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
		Total:     report.Total,
		Message:   bulkMessage(verb, report),
	}
}

// ListTrash lists trashed records with retention state.
func ListTrash(c *gin.Context) {
	var req dto.TrashListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !service.ValidOwnerKind(req.OwnerKind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown owner kind"})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	entries, err := service.ListTrashed(req.OwnerKind, userID, req.Query, req.OrderBy, req.OrderDesc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list trash failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// TrashRecords moves the selected records to the trash.
func TrashRecords(c *gin.Context) {
	var req dto.BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !service.ValidOwnerKind(req.OwnerKind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown owner kind"})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	report := service.BulkSoftDelete(req.OwnerKind, userID, req.IDs, nil)
	c.JSON(http.StatusOK, bulkResponse("Trashed", report))
}

// RestoreRecords moves the selected trashed records back to active.
func RestoreRecords(c *gin.Context) {
	var req dto.BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !service.ValidOwnerKind(req.OwnerKind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown owner kind"})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	report := service.BulkRestore(req.OwnerKind, userID, req.IDs, nil)
	c.JSON(http.StatusOK, bulkResponse("Restored", report))
}

// PurgeRecords permanently removes the selected trashed records.
func PurgeRecords(c *gin.Context) {
	var req dto.BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !service.ValidOwnerKind(req.OwnerKind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown owner kind"})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	report := service.BulkPurge(req.OwnerKind, userID, req.IDs, nil)
	c.JSON(http.StatusOK, bulkResponse("Purged", report))
}

// EmptyTrash enqueues an asynchronous purge of the whole trash.
func EmptyTrash(c *gin.Context) {
	var req dto.EmptyTrashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	purgeTask, err := task.CreatePurgeTask(userID, task.KindEmptyTrash, req.OwnerKind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create purge task failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": purgeTask})
}

// PurgeOverdue enqueues an asynchronous purge of overdue trash entries.
func PurgeOverdue(c *gin.Context) {
	var req dto.EmptyTrashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint64)
	purgeTask, err := task.CreatePurgeTask(userID, task.KindPurgeOverdue, req.OwnerKind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create purge task failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": purgeTask})
}

// ListPurgeTasks lists a user's purge tasks.
func ListPurgeTasks(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	tasks, err := task.ListPurgeTasks(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list purge tasks failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}
