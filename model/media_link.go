package model

import "time"

// MediaLink associates one media object with one owning record. A media
// object with several links is shared; with zero links it is orphaned.
type MediaLink struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	MediaStorageKey string `gorm:"column:media_storage_key;size:512;not null;index;uniqueIndex:uk_media_owner,priority:1" json:"media_storage_key"`

	OwnerKind string `gorm:"column:owner_kind;size:16;not null;uniqueIndex:uk_media_owner,priority:2" json:"owner_kind"`
	OwnerID   uint64 `gorm:"column:owner_id;not null;index;uniqueIndex:uk_media_owner,priority:3" json:"owner_id"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (MediaLink) TableName() string {
	return "media_link"
}
