package main

import (
	"context"
	"log"

	"storefront/internal/config"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/db"
	"storefront/internal/infra/filestore"
	"storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/validator"
)

func main() {
	config.LoadDotEnv(".env", "../.env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//商品ページキャッシュ（REDIS_ADDR があればRedis）
	var pageCache repository.ProductPageCache = cache.NopProductPageCache{}
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(context.Background(), cfg.RedisAddr)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer client.Close()
		pageCache = cache.NewRedisProductPageCache(client, cfg.ProductCacheTTL)
	}

	files, err := filestore.NewLocal(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		log.Fatalf("filestore: %v", err)
	}

	v := validator.New()
	users, routes := server.Wire(gormDB, pageCache, files, v)

	//Server起動
	e := server.New(cfg)
	if err := server.Start(e, cfg.Addr(), users, cfg, routes...); err != nil {
		log.Printf("server: %v", err)
	}
}
