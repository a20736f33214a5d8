// Command report prints the per-cluster statistics of the configured dataset.
package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rifqyarifani/klasterisasi-bumn/feed"
	"github.com/rifqyarifani/klasterisasi-bumn/internal/config"
)

func main() {
	// handle cmd line params
	format := flag.String("format", "table", "output format: table, csv or json")
	members := flag.Bool("members", false, "list the members of every cluster (table format)")
	flag.Parse()

	// setup logging -------------------------------------------------------------
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	// alter the caller() return to only include the last directory
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		parts := strings.Split(file, "/")
		if len(parts) > 1 {
			return strings.Join(parts[len(parts)-2:], "/") + ":" + strconv.Itoa(line)
		}
		return file + ":" + strconv.Itoa(line)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("@tag", "klaster-report").Caller().Logger()
	log.Logger = logger
	ctx := logger.WithContext(context.Background())

	// grab config ---------------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	schema, err := cfg.LoadSchema()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load schema")
	}
	source, err := cfg.Source(ctx, schema)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up dataset source")
	}

	loader := &feed.Loader{Schema: schema, Source: source}
	if err := report(ctx, loader, os.Stdout, *format, *members); err != nil {
		logger.Fatal().Err(err).Str("format", *format).Msg("failed to write report")
	}
}
