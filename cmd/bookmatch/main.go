package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/erain9/bookmatch/config"
	"github.com/erain9/bookmatch/pkg/core"
	"github.com/erain9/bookmatch/pkg/feed"
	"github.com/erain9/bookmatch/pkg/logging"
	"github.com/erain9/bookmatch/pkg/messaging/kafka"
	"github.com/erain9/bookmatch/pkg/report"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Format == "pretty",
	})

	opts := []core.Option{}
	if cfg.Kafka.Enabled {
		sender, err := kafka.NewMessageSender(cfg.Kafka.BrokerAddr, cfg.Kafka.Topic)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Kafka sender")
		}
		defer sender.Close()
		opts = append(opts, core.WithSender(sender))

		log.Info().
			Str("broker", cfg.Kafka.BrokerAddr).
			Str("topic", cfg.Kafka.Topic).
			Msg("Publishing execution reports to Kafka")
	}

	engine := core.NewEngine(opts...)
	ctx := context.Background()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Please enter Ticker and max_id (or -1 -1 to quit): ")
		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			fmt.Println("Expected: <ticker> <max_id>")
			continue
		}

		ticker := fields[0]
		maxID, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			fmt.Printf("Bad max_id %q\n", fields[1])
			continue
		}

		if ticker == "-1" && maxID == -1 {
			fmt.Println("Exiting query...")
			return
		}

		runQuery(ctx, engine, cfg, ticker, maxID)
	}
}

// runQuery replays the watermarked feed through a freshly reset engine
// and prints the requested views of the resulting state.
func runQuery(ctx context.Context, engine *core.Engine, cfg *config.Config, ticker string, maxID int64) {
	engine.Reset()

	orders, err := feed.LoadOrders(cfg.Feed.Path, feed.Format(cfg.Feed.Format), maxID)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.Feed.Path).Msg("Failed to load feed")
		return
	}

	start := time.Now()
	for _, order := range orders {
		engine.Apply(ctx, order)
	}
	log.Debug().
		Int("orders", len(orders)).
		Dur("took", time.Since(start)).
		Msg("Feed applied")

	fmt.Println()
	report.PrintPnL(os.Stdout, engine.PnL())
	fmt.Println()

	switch cfg.Report.View {
	case "snapshot":
		report.PrintSnapshot(os.Stdout, engine.Snapshot(ticker))
	case "both":
		report.PrintLadder(os.Stdout, ticker, engine.Ladder(ticker))
		report.PrintSnapshot(os.Stdout, engine.Snapshot(ticker))
	default:
		report.PrintLadder(os.Stdout, ticker, engine.Ladder(ticker))
	}
}
