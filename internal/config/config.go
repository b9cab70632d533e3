package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // あれば最優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	JWTSecret string // JWT署名シークレット

	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error
	FEURL    string // フロントURL（CORS）

	UploadDir       string // 画像の保存先
	UploadURLPrefix string // 画像の公開パス

	RedisAddr       string        // 空ならキャッシュなし
	ProductCacheTTL time.Duration // 商品ページキャッシュのTTL

	BodyLimit string // リクエストボディ上限（echo形式 "10M"）
}

// .env があれば読む（無くてもエラーにしない）
func LoadDotEnv(paths ...string) {
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			return
		}
	}
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}

	ttl, err := durationDefault("PRODUCT_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "app"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		FEURL:    getenv("FE_URL", "*"),

		UploadDir:       getenv("UPLOAD_DIR", "uploads"),
		UploadURLPrefix: getenv("UPLOAD_URL_PREFIX", "/uploads"),

		RedisAddr:       os.Getenv("REDIS_ADDR"),
		ProductCacheTTL: ttl,

		BodyLimit: getenv("BODY_LIMIT", "10M"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.GoEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("GO_ENV must be dev or prod")
	}

	return cfg, nil
}

func (c Config) IsDev() bool {
	return c.GoEnv == "dev"
}

// postgres接続文字列
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// ":8080" 形式
func (c Config) Addr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}
