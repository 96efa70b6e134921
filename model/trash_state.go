package model

import "time"

// TrashState is the soft-delete state embedded in every owning record.
// IsDeleted and DeletedAt move together: a record is trashed exactly
// when DeletedAt is set.
type TrashState struct {
	IsDeleted bool       `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

// MarkDeleted moves the state to trashed at the given time.
func (s *TrashState) MarkDeleted(now time.Time) {
	s.IsDeleted = true
	s.DeletedAt = &now
}

// MarkRestored moves the state back to active.
func (s *TrashState) MarkRestored() {
	s.IsDeleted = false
	s.DeletedAt = nil
}

// OwnerRecord is a record that can own media links and pass through
// the trash lifecycle.
type OwnerRecord interface {
	OwnerID() uint64
	Trash() *TrashState
}

const (
	OwnerKindAsset = "asset"
	OwnerKindItem  = "item"
)
