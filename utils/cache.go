package utils

import (
	"AssetVault/internal/repo"
	"AssetVault/model"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis cache client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

// Get reads a cached value.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Set writes a cached value.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, string(data), expiration).Err()
}

// Delete removes a cache entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// DeleteByPattern deletes cache entries by pattern.
func (c *RedisCache) DeleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return nil
}

// Exists checks whether a cache key exists.
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type CacheManager struct {
	cache Cache
}

var globalCacheManager *CacheManager
var cacheManagerOnce sync.Once

// InitCacheManager initializes the cache manager.
func InitCacheManager() {
	cacheManagerOnce.Do(func() {
		globalCacheManager = &CacheManager{
			cache: NewRedisCache(repo.Redis),
		}
	})
}

// GetCacheManager returns the cache manager.
func GetCacheManager() *CacheManager {
	if globalCacheManager == nil {
		InitCacheManager()
	}
	return globalCacheManager
}

// BuildCacheKey builds a cache key.
func BuildCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += fmt.Sprintf(":%v", param)
	}
	return key
}

const (
	CacheKeyOwnerList   = "owner:list"
	CacheKeyUserInfo    = "user:info"
	CacheKeyMediaObject = "media:object"
	CacheKeyMediaByKey  = "media:object:key"
)

type OwnerListCache struct {
	Records json.RawMessage `json:"records"`
	Total   int64           `json:"total"`
}

// GetOwnerListFromCache reads a cached owner list page.
func GetOwnerListFromCache(
	ctx context.Context,
	kind string,
	userId uint64,
	page int,
	pageSize int,
	orderBy string,
	orderDesc bool,
) (*OwnerListCache, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyOwnerList, kind, userId, page, pageSize, orderBy, orderDesc)

	var result OwnerListCache
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// SetOwnerListToCache writes a cached owner list page.
func SetOwnerListToCache(
	ctx context.Context,
	kind string,
	userId uint64,
	page int,
	pageSize int,
	orderBy string,
	orderDesc bool,
	data *OwnerListCache,
	expiration time.Duration,
) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyOwnerList, kind, userId, page, pageSize, orderBy, orderDesc)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateOwnerListCache clears cached list pages for one user and kind.
func InvalidateOwnerListCache(ctx context.Context, kind string, userId uint64) error {
	manager := GetCacheManager()
	keyPattern := BuildCacheKey(CacheKeyOwnerList, kind, userId) + ":*"
	cache, ok := manager.cache.(*RedisCache)
	if !ok {
		return manager.cache.Delete(ctx, keyPattern)
	}
	return cache.DeleteByPattern(ctx, keyPattern)
}

// GetUserInfoFromCache reads cached user info.
func GetUserInfoFromCache(ctx context.Context, userId uint64) (*model.User, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyUserInfo, userId)

	var result model.User
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}

	return &result, true
}

// SetUserInfoToCache writes cached user info.
func SetUserInfoToCache(ctx context.Context, userId uint64, data *model.User, expiration time.Duration) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyUserInfo, userId)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateUserInfoCache clears cached user info.
func InvalidateUserInfoCache(ctx context.Context, userId uint64) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyUserInfo, userId)
	return manager.cache.Delete(ctx, key)
}

// GetMediaObjectFromCache reads a cached media object.
func GetMediaObjectFromCache(ctx context.Context, mediaId uint64) (*model.MediaObject, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyMediaObject, mediaId)

	var result model.MediaObject
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}

	return &result, true
}

// SetMediaObjectToCache writes a cached media object.
func SetMediaObjectToCache(ctx context.Context, mediaId uint64, data *model.MediaObject, expiration time.Duration) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyMediaObject, mediaId)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateMediaObjectCache clears a cached media object.
func InvalidateMediaObjectCache(ctx context.Context, mediaId uint64) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyMediaObject, mediaId)
	return manager.cache.Delete(ctx, key)
}

// GetMediaIDByKey reads a cached media object ID by storage key.
func GetMediaIDByKey(ctx context.Context, storageKey string) (uint64, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyMediaByKey, storageKey)

	var result uint64
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return 0, false
	}
	if result == 0 {
		return 0, false
	}
	return result, true
}

// SetMediaIDByKey writes a cached media object ID by storage key.
func SetMediaIDByKey(ctx context.Context, storageKey string, mediaId uint64, expiration time.Duration) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyMediaByKey, storageKey)
	return manager.cache.Set(ctx, key, mediaId, expiration)
}

// InvalidateMediaKeyCache clears a cached media ID mapping.
func InvalidateMediaKeyCache(ctx context.Context, storageKey string) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyMediaByKey, storageKey)
	return manager.cache.Delete(ctx, key)
}
