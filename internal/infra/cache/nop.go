package cache

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// REDIS_ADDR 未設定のとき用
type NopProductPageCache struct{}

var _ repository.ProductPageCache = NopProductPageCache{}

func (NopProductPageCache) Get(context.Context, int) (repository.CachedPage, bool) {
	return repository.CachedPage{Version: repository.UnknownVersion}, false
}

func (NopProductPageCache) Set(context.Context, int, int64, []model.Product, int64) {}

func (NopProductPageCache) Invalidate(context.Context) {}
