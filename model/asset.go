package model

import "time"

type Asset struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	UserID uint64 `gorm:"column:user_id;not null;index;uniqueIndex:uk_user_tag,priority:1" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	Tag  string `gorm:"column:tag;size:64;not null;uniqueIndex:uk_user_tag,priority:2" json:"tag"`
	Name string `gorm:"column:name;size:255;not null" json:"name"`

	Category     string `gorm:"column:category;size:64;not null;default:''" json:"category,omitempty"`
	Location     string `gorm:"column:location;size:255;not null;default:''" json:"location,omitempty"`
	SerialNumber string `gorm:"column:serial_number;size:128;not null;default:''" json:"serial_number,omitempty"`

	TrashState `gorm:"embedded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Asset) TableName() string {
	return "asset"
}

// OwnerID implements OwnerRecord.
func (a *Asset) OwnerID() uint64 {
	return a.ID
}

// Trash implements OwnerRecord.
func (a *Asset) Trash() *TrashState {
	return &a.TrashState
}
