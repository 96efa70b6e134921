package model

import "time"

// MediaObject is one stored blob. StorageKey is the identity used for
// linking and deduplicated deletion; rows are removed only through the
// media deletion resolver, together with their link rows.
type MediaObject struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	UserID uint64 `gorm:"column:user_id;not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	StorageKey string `gorm:"column:storage_key;size:512;uniqueIndex;not null" json:"storage_key"`

	BucketName string `gorm:"column:bucket_name;size:64;not null" json:"bucket_name"`

	FileName  string `gorm:"column:file_name;size:255;not null" json:"file_name"`
	MimeType  string `gorm:"column:mime_type;size:128;not null;default:''" json:"mime_type"`
	SizeBytes int64  `gorm:"column:size_bytes;not null" json:"size_bytes"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (MediaObject) TableName() string {
	return "media_object"
}
