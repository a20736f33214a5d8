package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
	"github.com/rifqyarifani/klasterisasi-bumn/feed"
)

func testContext() context.Context {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	return logger.WithContext(context.Background())
}

// chdirTemp moves into an empty directory so godotenv finds no .env
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "bumn", cfg.Schema)
	assert.Equal(t, 0, cfg.Clusters)
	assert.Equal(t, "data.json", cfg.DataFile)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "en", cfg.Locale)
	assert.False(t, cfg.Debug)
}

func TestLoad_Environment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("KLASTER_PORT", "8080")
	t.Setenv("KLASTER_SCHEMA", "kodesaham")
	t.Setenv("KLASTER_CLUSTERS", "2")
	t.Setenv("KLASTER_DEBUG", "true")
	t.Setenv("KLASTER_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "kodesaham", cfg.Schema)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)

	schema, err := cfg.LoadSchema()
	require.NoError(t, err)
	assert.Equal(t, 2, schema.Clusters)
	assert.Equal(t, "dpr", schema.DefaultMetric)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	chdirTemp(t)
	t.Setenv("KLASTER_PORT", "abc")
	t.Setenv("KLASTER_CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Port: 3001, Schema: "bumn", DataFile: "data.json"}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
		is      error
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: "KLASTER_PORT"},
		{name: "unknown schema", mutate: func(c *Config) { c.Schema = "lq45" }, is: cluster.ErrUnknownSchema},
		{name: "too many clusters", mutate: func(c *Config) { c.Clusters = 9 }, is: cluster.ErrInvalidSchema},
		{name: "negative clusters", mutate: func(c *Config) { c.Clusters = -1 }, wantErr: "negative"},
		{name: "s3 bucket only", mutate: func(c *Config) { c.S3Bucket = "b" }, wantErr: "set together"},
		{name: "dsn without table", mutate: func(c *Config) { c.SQLDSN = "user@/db" }, wantErr: "KLASTER_SQL_TABLE"},
		{name: "no source", mutate: func(c *Config) { c.DataFile = "" }, wantErr: "no dataset source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			switch {
			case tt.is != nil:
				assert.ErrorIs(t, err, tt.is)
			case tt.wantErr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestSource_Precedence(t *testing.T) {
	schema, err := cluster.Lookup("bumn")
	require.NoError(t, err)

	cfg := &Config{DataFile: "data.json"}
	src, err := cfg.Source(testContext(), schema)
	require.NoError(t, err)
	assert.Equal(t, feed.FileSource{Path: "data.json"}, src)

	cfg.DataURL = "http://localhost:3000/data.json"
	src, err = cfg.Source(testContext(), schema)
	require.NoError(t, err)
	assert.IsType(t, &feed.HTTPSource{}, src)

	cfg.RedisAddr = "localhost:6379"
	src, err = cfg.Source(testContext(), schema)
	require.NoError(t, err)
	require.IsType(t, &feed.CachedSource{}, src)
	assert.IsType(t, &feed.HTTPSource{}, src.(*feed.CachedSource).Inner)
}
