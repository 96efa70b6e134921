package task

import (
	"AssetVault/config"
	"AssetVault/internal/mq"
	"AssetVault/internal/repo"
	"AssetVault/internal/service"
	"AssetVault/model"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	KindEmptyTrash   = "empty_trash"
	KindPurgeOverdue = "purge_overdue"
)

// PurgeMessage is the payload sent to the worker.
type PurgeMessage struct {
	TaskID  uint64 `json:"task_id"`
	Attempt int    `json:"attempt"`
}

// CreatePurgeTask records and enqueues a trash purge run. kind selects
// what gets purged: the whole trash or only overdue entries.
func CreatePurgeTask(userID uint64, kind, ownerKind string) (*model.PurgeTask, error) {
	if kind != KindEmptyTrash && kind != KindPurgeOverdue {
		return nil, fmt.Errorf("unknown purge kind %q", kind)
	}
	if !service.ValidOwnerKind(ownerKind) {
		return nil, fmt.Errorf("unknown owner kind %q", ownerKind)
	}
	task := &model.PurgeTask{
		UserID:    userID,
		Kind:      kind,
		OwnerKind: ownerKind,
		Status:    "pending",
		Progress:  0,
	}
	if err := repo.Db.Create(task).Error; err != nil {
		return nil, err
	}
	msg := PurgeMessage{
		TaskID:  task.ID,
		Attempt: 0,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		markPurgeTaskFailed(task.ID, err)
		return nil, err
	}
	publisher, err := mq.GetPublisher()
	if err != nil {
		markPurgeTaskFailed(task.ID, err)
		return nil, err
	}
	if err := publisher.PublishTask(context.Background(), body); err != nil {
		markPurgeTaskFailed(task.ID, err)
		return nil, err
	}
	return task, nil
}

// ListPurgeTasks lists purge tasks for a user, newest first.
func ListPurgeTasks(userID uint64, limit int) ([]model.PurgeTask, error) {
	if limit <= 0 {
		limit = 20
	}
	var tasks []model.PurgeTask
	err := repo.Db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// ProcessPurgeTask executes one purge run. A per-user lock keeps two
// runs over the same trash from interleaving; a busy lock surfaces as
// an error so delivery falls into the retry path.
func ProcessPurgeTask(ctx context.Context, taskID uint64) error {
	var task model.PurgeTask
	if err := repo.Db.Where("id = ?", taskID).First(&task).Error; err != nil {
		return err
	}
	if task.Status == "completed" {
		return nil
	}
	startedAt := time.Now()
	res := repo.Db.Model(&model.PurgeTask{}).
		Where("id = ? AND status IN ?", taskID, []string{"pending", "retrying"}).
		Updates(map[string]interface{}{
			"status":     "running",
			"progress":   0,
			"started_at": &startedAt,
			"error_msg":  "",
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	lock := repo.NewRedisLock(
		repo.Redis,
		fmt.Sprintf("purge:lock:%d:%s", task.UserID, task.OwnerKind),
		config.AppConfig.PurgeLockTTL,
	)
	if err := lock.Lock(ctx); err != nil {
		resetPurgeTaskPending(taskID)
		return err
	}
	defer func() {
		_ = lock.Unlock(context.Background())
	}()

	var ids []uint64
	var err error
	switch task.Kind {
	case KindPurgeOverdue:
		ids, err = service.ListOverdueIDs(task.OwnerKind, task.UserID)
	default:
		ids, err = service.ListTrashedIDs(task.OwnerKind, task.UserID)
	}
	if err != nil {
		return err
	}

	report := service.BulkPurge(task.OwnerKind, task.UserID, ids, func(p service.BulkProgress) {
		percent := 0
		if p.Total > 0 {
			percent = p.Current * 100 / p.Total
		}
		_ = repo.Db.Model(&model.PurgeTask{}).
			Where("id = ?", taskID).
			Updates(map[string]interface{}{
				"progress": percent,
				"total":    p.Total,
			}).Error
	})

	finishedAt := time.Now()
	return repo.Db.Model(&task).Updates(map[string]interface{}{
		"status":      "completed",
		"progress":    100,
		"succeeded":   report.Succeeded,
		"failed":      report.Failed,
		"total":       report.Total,
		"finished_at": &finishedAt,
	}).Error
}

// resetPurgeTaskPending puts a task back in line after losing the lock
// race, so the retry redelivery can claim it again.
func resetPurgeTaskPending(taskID uint64) {
	_ = repo.Db.Model(&model.PurgeTask{}).
		Where("id = ? AND status = ?", taskID, "running").
		Update("status", "pending").Error
}

func markPurgeTaskFailed(taskID uint64, err error) {
	finishedAt := time.Now()
	_ = repo.Db.Model(&model.PurgeTask{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"status":      "failed",
			"error_msg":   err.Error(),
			"finished_at": &finishedAt,
		}).Error
}
