package service

import "strings"

var allowedOrderBy = map[string]string{
	"created_at":  "created_at",
	"updated_at":  "updated_at",
	"deleted_at":  "deleted_at",
	"name":        "name",
	"tag":         "tag",
	"sku":         "sku",
	"stock_level": "stock_level",
	"id":          "id",
}

func sanitizeOrderBy(orderBy string) string {
	key := strings.ToLower(strings.TrimSpace(orderBy))
	return allowedOrderBy[key]
}
