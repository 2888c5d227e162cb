package main

import (
	"flag"
	"os"

	"github.com/erain9/bookmatch/pkg/feed"
	"github.com/erain9/bookmatch/pkg/logging"
	"github.com/rs/zerolog/log"
)

var (
	outPath  = flag.String("out", "orders.csv", "Output CSV path")
	logLevel = flag.String("log_level", "info", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	logging.Setup(logging.Config{Level: *logLevel, Pretty: true})

	cfg, err := feed.LoadGeneratorConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load generator configuration")
	}

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to create output file")
	}
	defer f.Close()

	gen := feed.NewGenerator(cfg)
	if err := gen.Write(f); err != nil {
		log.Fatal().Err(err).Msg("Failed to write order stream")
	}

	log.Info().
		Str("path", *outPath).
		Int("rows", cfg.Rows).
		Float64("cancel_rate", cfg.CancelRate).
		Float64("limit_rate", cfg.LimitRate).
		Msg("Generated synthetic order stream")
}
