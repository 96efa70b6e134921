package model

import "time"

type PurgeTask struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint64 `gorm:"column:user_id;index;not null" json:"user_id"`

	Kind      string `gorm:"column:kind;type:varchar(32);not null" json:"kind"` // empty_trash / purge_overdue
	OwnerKind string `gorm:"column:owner_kind;type:varchar(16);not null" json:"owner_kind"`

	Status    string `gorm:"column:status;type:varchar(32);index;not null" json:"status"`
	Progress  int    `gorm:"column:progress;default:0" json:"progress"`
	Succeeded int    `gorm:"column:succeeded;default:0" json:"succeeded"`
	Failed    int    `gorm:"column:failed;default:0" json:"failed"`
	Total     int    `gorm:"column:total;default:0" json:"total"`

	ErrorMsg    string     `gorm:"column:error_msg;type:text" json:"error_msg"`
	RetryCount  int        `gorm:"column:retry_count;default:0" json:"retry_count"`
	NextRetryAt *time.Time `gorm:"column:next_retry_at" json:"next_retry_at"`
	StartedAt   *time.Time `gorm:"column:started_at" json:"started_at"`
	FinishedAt  *time.Time `gorm:"column:finished_at" json:"finished_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (PurgeTask) TableName() string {
	return "purge_task"
}
