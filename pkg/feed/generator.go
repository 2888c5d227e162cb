package feed

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"

	"github.com/spf13/viper"
)

// GeneratorConfig holds parameters for the synthetic order stream
type GeneratorConfig struct {
	Rows       int
	CancelRate float64 // cancel vs add rate
	LimitRate  float64 // limit vs market order rate
	Tickers    []string
	PriceMin   float64
	PriceMax   float64
	VolumeMax  int
	Seed       int64
}

// LoadGeneratorConfig loads generator parameters from environment variables
func LoadGeneratorConfig() (*GeneratorConfig, error) {
	v := viper.New()

	v.SetDefault("FEEDGEN_ROWS", 100000)
	v.SetDefault("FEEDGEN_CANCEL_RATE", 0.5)
	v.SetDefault("FEEDGEN_LIMIT_RATE", 0.7)
	v.SetDefault("FEEDGEN_TICKERS", []string{"1131", "2211", "2313"})
	v.SetDefault("FEEDGEN_PRICE_MIN", 40.0)
	v.SetDefault("FEEDGEN_PRICE_MAX", 238.4)
	v.SetDefault("FEEDGEN_VOLUME_MAX", 590)
	v.SetDefault("FEEDGEN_SEED", 0)

	v.AutomaticEnv()

	cfg := &GeneratorConfig{
		Rows:       v.GetInt("FEEDGEN_ROWS"),
		CancelRate: v.GetFloat64("FEEDGEN_CANCEL_RATE"),
		LimitRate:  v.GetFloat64("FEEDGEN_LIMIT_RATE"),
		Tickers:    v.GetStringSlice("FEEDGEN_TICKERS"),
		PriceMin:   v.GetFloat64("FEEDGEN_PRICE_MIN"),
		PriceMax:   v.GetFloat64("FEEDGEN_PRICE_MAX"),
		VolumeMax:  v.GetInt("FEEDGEN_VOLUME_MAX"),
		Seed:       v.GetInt64("FEEDGEN_SEED"),
	}

	if err := validateGeneratorConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid generator configuration: %w", err)
	}

	return cfg, nil
}

func validateGeneratorConfig(cfg *GeneratorConfig) error {
	if cfg.Rows <= 0 {
		return fmt.Errorf("FEEDGEN_ROWS must be positive")
	}
	if cfg.CancelRate < 0 || cfg.CancelRate > 1 {
		return fmt.Errorf("FEEDGEN_CANCEL_RATE must be in [0, 1]")
	}
	if cfg.LimitRate < 0 || cfg.LimitRate > 1 {
		return fmt.Errorf("FEEDGEN_LIMIT_RATE must be in [0, 1]")
	}
	if len(cfg.Tickers) == 0 {
		return fmt.Errorf("FEEDGEN_TICKERS must not be empty")
	}
	if cfg.PriceMin <= 0 || cfg.PriceMax <= cfg.PriceMin {
		return fmt.Errorf("FEEDGEN_PRICE_MIN/FEEDGEN_PRICE_MAX must describe a positive range")
	}
	if cfg.VolumeMax <= 0 {
		return fmt.Errorf("FEEDGEN_VOLUME_MAX must be positive")
	}
	return nil
}

// Generator produces a synthetic add-and-cancel order stream. Cancels
// always target a previously generated, not-yet-canceled limit order.
type Generator struct {
	cfg *GeneratorConfig
	rng *rand.Rand
}

// NewGenerator creates a generator; a zero seed makes the stream
// non-deterministic, any other seed reproduces it exactly.
func NewGenerator(cfg *GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Write emits the stream as CSV in the add-and-cancel record shape
func (g *Generator) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, "ID,Ticker,Action,Type,Side,Price,Volume,Cancel_Target_ID"); err != nil {
		return err
	}

	// Ids of resting limit orders a future row may cancel.
	cancelable := make([]int64, 0, g.cfg.Rows)

	for id := int64(0); id < int64(g.cfg.Rows); id++ {
		if g.rng.Float64() < g.cfg.CancelRate && len(cancelable) > 0 {
			idx := g.rng.Intn(len(cancelable))
			target := cancelable[idx]
			cancelable = append(cancelable[:idx], cancelable[idx+1:]...)

			if _, err := fmt.Fprintf(bw, "%d,-1,Cancel,-1,-1,-1,-1,%d\n", id, target); err != nil {
				return err
			}
			continue
		}

		ticker := g.cfg.Tickers[g.rng.Intn(len(g.cfg.Tickers))]
		side := []string{"Buy", "Sell"}[g.rng.Intn(2)]
		volume := 1 + g.rng.Intn(g.cfg.VolumeMax)

		if g.rng.Float64() < g.cfg.LimitRate {
			price := g.cfg.PriceMin + g.rng.Float64()*(g.cfg.PriceMax-g.cfg.PriceMin)
			cancelable = append(cancelable, id)

			if _, err := fmt.Fprintf(bw, "%d,%s,Add,L,%s,%.2f,%d,-1\n", id, ticker, side, price, volume); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(bw, "%d,%s,Add,M,%s,-1,%d,-1\n", id, ticker, side, volume); err != nil {
			return err
		}
	}

	return bw.Flush()
}
