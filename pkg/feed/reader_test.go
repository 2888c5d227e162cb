package feed

import (
	"strings"
	"testing"

	"github.com/erain9/bookmatch/pkg/core"
	"github.com/nikolaydubina/fpdecimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addCancelFeed = `ID,Ticker,Action,Type,Side,Price,Volume,Cancel_Target_ID
0,1131,Add,L,Buy,10.00,100,-1
1,2211,Add,M,Sell,-1,40,-1
2,-1,Cancel,-1,-1,-1,-1,0
3,1131,Add,L,Sell,10.50,60,-1
`

const addOnlyFeed = `ID,Ticker,Type,Side,Price,Volume
0,1131,L,Buy,10.00,100
1,1131,M,Sell,-1,40
`

func TestReadOrdersAddCancel(t *testing.T) {
	orders, err := ReadOrders(strings.NewReader(addCancelFeed), FormatAddCancel, -1)
	require.NoError(t, err)
	require.Len(t, orders, 4)

	assert.Equal(t, int64(0), orders[0].ID())
	assert.Equal(t, "1131", orders[0].Ticker())
	assert.True(t, orders[0].IsLimitOrder())
	assert.Equal(t, core.Buy, orders[0].Side())
	assert.True(t, orders[0].Price().Equal(fpdecimal.FromFloat(10.00)))
	assert.True(t, orders[0].Volume().Equal(fpdecimal.FromInt(100)))

	// Market records carry a -1 price sentinel the parser must ignore.
	assert.True(t, orders[1].IsMarketOrder())
	assert.Equal(t, core.Sell, orders[1].Side())
	assert.True(t, orders[1].Price().Equal(fpdecimal.Zero))

	// Cancel records carry sentinels in every add column.
	assert.True(t, orders[2].IsCancel())
	assert.Equal(t, int64(0), orders[2].CancelTarget())

	assert.True(t, orders[3].IsLimitOrder())
}

func TestReadOrdersAddOnly(t *testing.T) {
	orders, err := ReadOrders(strings.NewReader(addOnlyFeed), FormatAddOnly, -1)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.True(t, orders[0].IsLimitOrder())
	assert.True(t, orders[1].IsMarketOrder())
}

func TestReadOrdersWatermark(t *testing.T) {
	tests := []struct {
		name  string
		maxID int64
		want  int
	}{
		{"truncates past watermark", 1, 2},
		{"watermark at last id", 3, 4},
		{"watermark zero keeps first", 0, 1},
		{"negative disables watermark", -1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := ReadOrders(strings.NewReader(addCancelFeed), FormatAddCancel, tt.maxID)
			require.NoError(t, err)
			assert.Len(t, orders, tt.want)
		})
	}
}

func TestReadOrdersIgnoresExtraColumns(t *testing.T) {
	feed := `Timestamp,ID,Ticker,Type,Side,Price,Volume
1700000000,0,1131,L,Buy,10.00,100
`
	orders, err := ReadOrders(strings.NewReader(feed), FormatAddOnly, -1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(0), orders[0].ID())
}

func TestReadOrdersErrors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		feed    string
		wantErr string
	}{
		{
			"unknown format",
			Format("binary"),
			addCancelFeed,
			"unknown feed format",
		},
		{
			"missing column",
			FormatAddCancel,
			"ID,Ticker,Type,Side,Price,Volume\n",
			`missing column "Action"`,
		},
		{
			"bad id",
			FormatAddOnly,
			"ID,Ticker,Type,Side,Price,Volume\nx,1131,L,Buy,10.00,100\n",
			"bad id",
		},
		{
			"unknown action",
			FormatAddCancel,
			"ID,Ticker,Action,Type,Side,Price,Volume,Cancel_Target_ID\n0,1131,Modify,L,Buy,10.00,100,-1\n",
			"unknown action",
		},
		{
			"unknown side",
			FormatAddOnly,
			"ID,Ticker,Type,Side,Price,Volume\n0,1131,L,Hold,10.00,100\n",
			"unknown side",
		},
		{
			"unknown type",
			FormatAddOnly,
			"ID,Ticker,Type,Side,Price,Volume\n0,1131,X,Buy,10.00,100\n",
			"unknown type",
		},
		{
			"bad price",
			FormatAddOnly,
			"ID,Ticker,Type,Side,Price,Volume\n0,1131,L,Buy,abc,100\n",
			"bad price",
		},
		{
			"bad volume",
			FormatAddOnly,
			"ID,Ticker,Type,Side,Price,Volume\n0,1131,L,Buy,10.00,abc\n",
			"bad volume",
		},
		{
			"zero volume rejected",
			FormatAddOnly,
			"ID,Ticker,Type,Side,Price,Volume\n0,1131,L,Buy,10.00,0\n",
			core.ErrInvalidVolume.Error(),
		},
		{
			"bad cancel target",
			FormatAddCancel,
			"ID,Ticker,Action,Type,Side,Price,Volume,Cancel_Target_ID\n0,-1,Cancel,-1,-1,-1,-1,x\n",
			"bad cancel target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOrders(strings.NewReader(tt.feed), tt.format, -1)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadOrdersMissingFile(t *testing.T) {
	_, err := LoadOrders("does-not-exist.csv", FormatAddCancel, -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open feed")
}
