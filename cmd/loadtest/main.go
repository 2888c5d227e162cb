package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/erain9/bookmatch/pkg/core"
	"github.com/erain9/bookmatch/pkg/feed"
	"github.com/erain9/bookmatch/pkg/messaging"
)

var (
	rows = flag.Int("rows", 100000, "Number of order events to generate and apply")
	seed = flag.Int64("seed", 42, "Generator seed")
)

func main() {
	flag.Parse()

	cfg := &feed.GeneratorConfig{
		Rows:       *rows,
		CancelRate: 0.5,
		LimitRate:  0.7,
		Tickers:    []string{"1131", "2211", "2313"},
		PriceMin:   40.0,
		PriceMax:   238.4,
		VolumeMax:  590,
		Seed:       *seed,
	}

	var buf bytes.Buffer
	if err := feed.NewGenerator(cfg).Write(&buf); err != nil {
		log.Fatalf("Failed to generate order stream: %v", err)
	}

	orders, err := feed.ReadOrders(&buf, feed.FormatAddCancel, -1)
	if err != nil {
		log.Fatalf("Failed to parse generated stream: %v", err)
	}

	engine := core.NewEngine(core.WithSender(messaging.NewMockSender()))
	ctx := context.Background()

	// Latency per Apply in nanoseconds, up to 10ms.
	hist := hdrhistogram.New(1, 10_000_000, 3)

	start := time.Now()
	fills := 0
	for _, order := range orders {
		applyStart := time.Now()
		done := engine.Apply(ctx, order)
		if err := hist.RecordValue(time.Since(applyStart).Nanoseconds()); err != nil {
			log.Fatalf("Failed to record latency: %v", err)
		}
		fills += len(done.Fills)
	}
	elapsed := time.Since(start)

	fmt.Printf("Applied %d orders in %v (%.0f orders/sec), %d fills\n",
		len(orders), elapsed, float64(len(orders))/elapsed.Seconds(), fills)
	fmt.Printf("Apply latency p50=%dns p99=%dns p99.9=%dns max=%dns\n",
		hist.ValueAtQuantile(50),
		hist.ValueAtQuantile(99),
		hist.ValueAtQuantile(99.9),
		hist.Max())
}
