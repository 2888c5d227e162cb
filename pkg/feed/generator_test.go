package feed

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeneratorConfig(rows int, seed int64) *GeneratorConfig {
	return &GeneratorConfig{
		Rows:       rows,
		CancelRate: 0.5,
		LimitRate:  0.7,
		Tickers:    []string{"1131", "2211", "2313"},
		PriceMin:   40.0,
		PriceMax:   238.4,
		VolumeMax:  590,
		Seed:       seed,
	}
}

func TestGeneratorDeterministicUnderSeed(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, NewGenerator(testGeneratorConfig(500, 42)).Write(&a))
	require.NoError(t, NewGenerator(testGeneratorConfig(500, 42)).Write(&b))
	assert.Equal(t, a.String(), b.String())

	var c bytes.Buffer
	require.NoError(t, NewGenerator(testGeneratorConfig(500, 43)).Write(&c))
	assert.NotEqual(t, a.String(), c.String())
}

func TestGeneratorOutputParses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewGenerator(testGeneratorConfig(1000, 7)).Write(&buf))

	orders, err := ReadOrders(bytes.NewReader(buf.Bytes()), FormatAddCancel, -1)
	require.NoError(t, err)
	require.Len(t, orders, 1000)

	// Ids are the row index.
	for i, order := range orders {
		assert.Equal(t, int64(i), order.ID())
	}
}

func TestGeneratorCancelsTargetEarlierLimits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewGenerator(testGeneratorConfig(2000, 11)).Write(&buf))

	orders, err := ReadOrders(bytes.NewReader(buf.Bytes()), FormatAddCancel, -1)
	require.NoError(t, err)

	limitIDs := make(map[int64]bool)
	cancels := 0
	for _, order := range orders {
		if order.IsCancel() {
			cancels++
			target := order.CancelTarget()
			assert.True(t, limitIDs[target], "cancel %d targets %d which is not an earlier uncanceled limit", order.ID(), target)
			delete(limitIDs, target)
			continue
		}
		if order.IsLimitOrder() {
			limitIDs[order.ID()] = true
		}
	}
	assert.Greater(t, cancels, 0, "expected the stream to contain cancels")
}

func TestGeneratorFirstRowIsNeverCancel(t *testing.T) {
	// No cancelable id exists yet, so the first row must be an add even
	// when the rate would have picked a cancel.
	for seed := int64(1); seed <= 20; seed++ {
		var buf bytes.Buffer
		cfg := testGeneratorConfig(1, seed)
		cfg.CancelRate = 1.0
		require.NoError(t, NewGenerator(cfg).Write(&buf))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[1], ",Add,")
	}
}

func TestGeneratorHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewGenerator(testGeneratorConfig(1, 1)).Write(&buf))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "ID,Ticker,Action,Type,Side,Price,Volume,Cancel_Target_ID", lines[0])
}

func TestValidateGeneratorConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GeneratorConfig)
	}{
		{"zero rows", func(c *GeneratorConfig) { c.Rows = 0 }},
		{"cancel rate above one", func(c *GeneratorConfig) { c.CancelRate = 1.5 }},
		{"negative limit rate", func(c *GeneratorConfig) { c.LimitRate = -0.1 }},
		{"no tickers", func(c *GeneratorConfig) { c.Tickers = nil }},
		{"inverted price range", func(c *GeneratorConfig) { c.PriceMin, c.PriceMax = 100, 50 }},
		{"zero volume max", func(c *GeneratorConfig) { c.VolumeMax = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testGeneratorConfig(100, 1)
			tt.mutate(cfg)
			assert.Error(t, validateGeneratorConfig(cfg))
		})
	}

	assert.NoError(t, validateGeneratorConfig(testGeneratorConfig(100, 1)))
}

func TestLoadGeneratorConfigDefaults(t *testing.T) {
	cfg, err := LoadGeneratorConfig()
	require.NoError(t, err)

	assert.Equal(t, 100000, cfg.Rows)
	assert.Equal(t, 0.5, cfg.CancelRate)
	assert.Equal(t, 0.7, cfg.LimitRate)
	assert.Equal(t, []string{"1131", "2211", "2313"}, cfg.Tickers)
	assert.Equal(t, 590, cfg.VolumeMax)
}
