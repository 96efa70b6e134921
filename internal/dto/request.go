package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username      string `json:"username" binding:"required"`
	FirstPassword string `json:"first-password" binding:"required"`
	LastPassword  string `json:"second-password" binding:"required"`
	Email         string `json:"email" binding:"required"`
}

type AssetCreateRequest struct {
	Tag          string `json:"tag" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	SerialNumber string `json:"serial_number"`
}

type AssetUpdateRequest struct {
	ID           uint64  `json:"id" binding:"required"`
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Location     *string `json:"location"`
	SerialNumber *string `json:"serial_number"`
}

type ItemCreateRequest struct {
	SKU              string `json:"sku" binding:"required"`
	Name             string `json:"name" binding:"required"`
	StockLevel       int64  `json:"stock_level"`
	Unit             string `json:"unit"`
	ReorderThreshold int64  `json:"reorder_threshold"`
}

type ItemUpdateRequest struct {
	ID               uint64  `json:"id" binding:"required"`
	Name             *string `json:"name"`
	StockLevel       *int64  `json:"stock_level"`
	Unit             *string `json:"unit"`
	ReorderThreshold *int64  `json:"reorder_threshold"`
}

type OwnerListRequest struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	OrderBy   string `json:"order_by"`
	OrderDesc bool   `json:"order_desc"`
	Query     string `json:"query"`
}

type BulkIDsRequest struct {
	OwnerKind string   `json:"owner_kind" binding:"required"`
	IDs       []uint64 `json:"ids" binding:"required"`
}

type TrashListRequest struct {
	OwnerKind string `json:"owner_kind" binding:"required"`
	Query     string `json:"query"`
	OrderBy   string `json:"order_by"`
	OrderDesc bool   `json:"order_desc"`
}

type EmptyTrashRequest struct {
	OwnerKind string `json:"owner_kind" binding:"required"`
}

type MediaLinkRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
	OwnerKind  string `json:"owner_kind" binding:"required"`
	OwnerID    uint64 `json:"owner_id" binding:"required"`
}

type MediaKeyRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

type MediaBulkDeleteRequest struct {
	StorageKeys []string `json:"storage_keys" binding:"required"`
}
