package model

import "time"

type InventoryItem struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	UserID uint64 `gorm:"column:user_id;not null;index;uniqueIndex:uk_user_sku,priority:1" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	SKU  string `gorm:"column:sku;size:64;not null;uniqueIndex:uk_user_sku,priority:2" json:"sku"`
	Name string `gorm:"column:name;size:255;not null" json:"name"`

	StockLevel       int64  `gorm:"column:stock_level;not null;default:0" json:"stock_level"`
	Unit             string `gorm:"column:unit;size:32;not null;default:''" json:"unit,omitempty"`
	ReorderThreshold int64  `gorm:"column:reorder_threshold;not null;default:0" json:"reorder_threshold,omitempty"`

	TrashState `gorm:"embedded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (InventoryItem) TableName() string {
	return "inventory_item"
}

// OwnerID implements OwnerRecord.
func (i *InventoryItem) OwnerID() uint64 {
	return i.ID
}

// Trash implements OwnerRecord.
func (i *InventoryItem) Trash() *TrashState {
	return &i.TrashState
}
