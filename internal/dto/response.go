package dto

// TrashEntry is a trashed record with its computed retention state.
type TrashEntry struct {
	Record        interface{} `json:"record"`
	DaysRemaining int         `json:"days_remaining"`
	Overdue       bool        `json:"overdue"`
}

// BulkReportResponse summarizes a sequential batch run.
type BulkReportResponse struct {
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Total     int    `json:"total"`
	Message   string `json:"message"`
}

// MediaLinkInfo describes one link row with the owner's current state.
type MediaLinkInfo struct {
	OwnerKind      string `json:"owner_kind"`
	OwnerID        uint64 `json:"owner_id"`
	OwnerIsDeleted bool   `json:"owner_is_deleted"`
	OwnerMissing   bool   `json:"owner_missing,omitempty"`
}

// MediaDeleteResponse reports cascade impact of a media deletion.
type MediaDeleteResponse struct {
	DeletedLinkCount int `json:"deleted_link_count"`
}

// MediaBulkDeleteResponse aggregates a batch media deletion.
type MediaBulkDeleteResponse struct {
	DeletedCount int    `json:"deleted_count"`
	DeletedLinks int    `json:"deleted_links"`
	Failed       int    `json:"failed"`
	Message      string `json:"message"`
}

// StorageUsageResponse reports derived quota usage.
type StorageUsageResponse struct {
	UsedBytes  int64 `json:"used_bytes"`
	QuotaBytes int64 `json:"quota_bytes"`
}
