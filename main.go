package main

import (
	"github.com/rs/zerolog"

	"github.com/rifqyarifani/klasterisasi-bumn/feed"
	"github.com/rifqyarifani/klasterisasi-bumn/internal/config"
)

const (
	apiVersion = "0.1.0"

	sessionName       = "KSID"
	sessionSizeKey    = "size"
	echartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

	pngWidth  = 800
	pngHeight = 600
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		ctx := setupLogging(false)
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := setupLogging(cfg.Debug)

	schema, err := cfg.LoadSchema()
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to load schema")
	}

	source, err := cfg.Source(ctx, schema)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to set up dataset source")
	}

	deps := &Dependencies{
		schema:      schema,
		loader:      &feed.Loader{Schema: schema, Source: source},
		templates:   mustParseTemplates(cfg.Locale),
		cookieStore: setupSessionsStore(ctx, cfg.SessionKey),
		reports:     setupReportStore(ctx, cfg.S3Region, cfg.S3ReportBucket),
		logger:      zerolog.Ctx(ctx),
	}
	deps.bufpool = newBufferPool()

	startHTTPServer(ctx, deps, cfg.Port)
}
