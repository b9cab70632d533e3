package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"

	"github.com/go-redis/redis/v8"
)

const (
	versionKey = "products:pages:version"
	pagePrefix = "products:pages"
)

type cachedPage struct {
	Products []model.Product `json:"products"`
	Total    int64           `json:"total"`
}

// /products/limited のページをRedisに置く。
// 無効化はバージョンキーをINCRするだけ（古いキーはTTLで消える）。
type RedisProductPageCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ repository.ProductPageCache = (*RedisProductPageCache)(nil)

// REDIS_ADDR に接続してPingする
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// DI
func NewRedisProductPageCache(client *redis.Client, ttl time.Duration) *RedisProductPageCache {
	return &RedisProductPageCache{client: client, ttl: ttl}
}

func (c *RedisProductPageCache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

func (c *RedisProductPageCache) key(version int64, page int) string {
	return pagePrefix + ":" + strconv.FormatInt(version, 10) + ":" + strconv.Itoa(page)
}

// キャッシュ取得。Redisの失敗はミス扱い。
func (c *RedisProductPageCache) Get(ctx context.Context, page int) (repository.CachedPage, bool) {
	v, err := c.version(ctx)
	if err != nil {
		log.Printf("product cache: version: %v", err)
		return repository.CachedPage{Version: repository.UnknownVersion}, false
	}
	miss := repository.CachedPage{Version: v}

	raw, err := c.client.Get(ctx, c.key(v, page)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("product cache: get: %v", err)
		}
		return miss, false
	}

	var cp cachedPage
	if err := json.Unmarshal(raw, &cp); err != nil {
		return miss, false
	}
	return repository.CachedPage{Products: cp.Products, Total: cp.Total, Version: v}, true
}

// 呼び出し側が読んだ世代のキーに書く（今の世代は見ない）
func (c *RedisProductPageCache) Set(ctx context.Context, page int, version int64, products []model.Product, total int64) {
	if version < 0 {
		return
	}

	raw, err := json.Marshal(cachedPage{Products: products, Total: total})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(version, page), raw, c.ttl).Err(); err != nil {
		log.Printf("product cache: set: %v", err)
	}
}

func (c *RedisProductPageCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		log.Printf("product cache: invalidate: %v", err)
	}
}
