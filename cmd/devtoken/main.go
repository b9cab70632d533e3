// devtoken はローカル確認用のアクセストークンを出力する。
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/middleware"
)

func main() {
	userID := flag.Int64("user", 1, "user id (sub)")
	role := flag.String("role", string(model.RoleUser), "USER or ADMIN")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	config.LoadDotEnv(".env", "../.env")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	token, err := middleware.IssueToken(cfg.JWTSecret, *userID, *role, *ttl)
	if err != nil {
		log.Fatalf("issue: %v", err)
	}
	fmt.Println(token)
}
