// Package config reads the runtime settings shared by the dashboard and the report tool.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
	"github.com/rifqyarifani/klasterisasi-bumn/feed"

	_ "github.com/go-sql-driver/mysql"
)

type Config struct {
	Port       int
	Debug      bool
	Schema     string
	Clusters   int // 0 keeps the schema's own K
	Locale     string
	SessionKey string

	DataFile    string
	DataURL     string
	HTTPTimeout time.Duration

	S3Bucket string
	S3Key    string
	S3Region string
	// CSP violation reports are archived here when set
	S3ReportBucket string

	SQLDriver string
	SQLDSN    string
	SQLTable  string

	RedisAddr string
	CacheTTL  time.Duration
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvAsInt("KLASTER_PORT", 3001),
		Debug:          getEnvAsBool("KLASTER_DEBUG", false),
		Schema:         getEnv("KLASTER_SCHEMA", "bumn"),
		Clusters:       getEnvAsInt("KLASTER_CLUSTERS", 0),
		Locale:         getEnv("KLASTER_LOCALE", "en"),
		SessionKey:     getEnv("KLASTER_SESSION_KEY", ""),
		DataFile:       getEnv("KLASTER_DATA_FILE", "data.json"),
		DataURL:        getEnv("KLASTER_DATA_URL", ""),
		HTTPTimeout:    getEnvAsDuration("KLASTER_HTTP_TIMEOUT", 10*time.Second),
		S3Bucket:       getEnv("KLASTER_S3_BUCKET", ""),
		S3Key:          getEnv("KLASTER_S3_KEY", ""),
		S3Region:       getEnv("KLASTER_S3_REGION", "ap-southeast-3"),
		S3ReportBucket: getEnv("KLASTER_S3_REPORT_BUCKET", ""),
		SQLDriver:      getEnv("KLASTER_SQL_DRIVER", "mysql"),
		SQLDSN:         getEnv("KLASTER_SQL_DSN", ""),
		SQLTable:       getEnv("KLASTER_SQL_TABLE", ""),
		RedisAddr:      getEnv("KLASTER_REDIS_ADDR", ""),
		CacheTTL:       getEnvAsDuration("KLASTER_CACHE_TTL", 10*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("KLASTER_PORT %d is out of range", c.Port)
	}
	if c.Clusters < 0 {
		return fmt.Errorf("KLASTER_CLUSTERS must not be negative")
	}
	if _, err := c.LoadSchema(); err != nil {
		return err
	}
	if (c.S3Bucket == "") != (c.S3Key == "") {
		return fmt.Errorf("KLASTER_S3_BUCKET and KLASTER_S3_KEY must be set together")
	}
	if c.SQLDSN != "" && c.SQLTable == "" {
		return fmt.Errorf("KLASTER_SQL_TABLE is required with KLASTER_SQL_DSN")
	}
	if c.DataFile == "" && c.DataURL == "" && c.S3Bucket == "" && c.SQLDSN == "" {
		return fmt.Errorf("no dataset source configured")
	}
	return nil
}

// LoadSchema returns the configured dataset variant with the K override applied.
func (c *Config) LoadSchema() (*cluster.Schema, error) {
	schema, err := cluster.Lookup(c.Schema)
	if err != nil {
		return nil, err
	}
	schema = schema.WithClusters(c.Clusters)
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

// Source builds the dataset source. SQL wins over S3, S3 over URL, URL over the local file.
// With KLASTER_REDIS_ADDR set, the source is wrapped in the redis cache.
func (c *Config) Source(ctx context.Context, schema *cluster.Schema) (feed.Source, error) {
	var src feed.Source

	switch {
	case c.SQLDSN != "":
		db, err := sqlx.Open(c.SQLDriver, c.SQLDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s database: %w", c.SQLDriver, err)
		}
		src, err = feed.NewSQLSource(db, c.SQLTable, schema)
		if err != nil {
			return nil, err
		}
	case c.S3Bucket != "":
		s3src, err := feed.NewS3Source(ctx, c.S3Region, c.S3Bucket, c.S3Key)
		if err != nil {
			return nil, err
		}
		src = s3src
	case c.DataURL != "":
		src = feed.NewHTTPSource(c.DataURL, c.HTTPTimeout)
	default:
		src = feed.FileSource{Path: c.DataFile}
	}

	if c.RedisAddr != "" {
		zerolog.Ctx(ctx).Info().Str("redis", c.RedisAddr).Dur("ttl", c.CacheTTL).Msg("caching dataset in redis")
		src = &feed.CachedSource{Inner: src, Pool: feed.NewRedisPool(c.RedisAddr), TTL: c.CacheTTL}
	}

	zerolog.Ctx(ctx).Info().Str("source", src.String()).Msg("dataset source configured")
	return src, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
