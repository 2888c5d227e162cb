// Package feed parses order event streams into validated core.Order
// values and hands them to the engine in arrival order. The core
// assumes well-formed orders; every malformed record is rejected here.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/erain9/bookmatch/pkg/core"
	"github.com/nikolaydubina/fpdecimal"
)

// Format selects the record shape of the feed
type Format string

// Feed formats. The add-only shape omits the action and cancel-target
// columns; every record is implicitly an add.
const (
	FormatAddOnly   Format = "add-only"
	FormatAddCancel Format = "add-cancel"
)

// Column headers of the two record shapes
var (
	addOnlyColumns   = []string{"ID", "Ticker", "Type", "Side", "Price", "Volume"}
	addCancelColumns = []string{"ID", "Ticker", "Action", "Type", "Side", "Price", "Volume", "Cancel_Target_ID"}
)

// LoadOrders reads the feed file at path, truncated at the max-id
// watermark. A negative maxID disables the watermark.
func LoadOrders(path string, format Format, maxID int64) ([]*core.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}
	defer f.Close()

	orders, err := ReadOrders(f, format, maxID)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed %s: %w", path, err)
	}
	return orders, nil
}

// ReadOrders parses an ordered sequence of order events from r. Orders
// arrive with monotonically-assigned ids, so reading stops at the first
// record whose id exceeds the watermark.
func ReadOrders(r io.Reader, format Format, maxID int64) ([]*core.Order, error) {
	var columns []string
	switch format {
	case FormatAddOnly:
		columns = addOnlyColumns
	case FormatAddCancel:
		columns = addCancelColumns
	default:
		return nil, fmt.Errorf("unknown feed format %q", format)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Extra columns are ignored; the named ones must all be present.
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range columns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("feed header missing column %q", name)
		}
	}

	orders := make([]*core.Order, 0)
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		order, err := parseRecord(record, col, format)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		if maxID >= 0 && order.ID() > maxID {
			break
		}

		orders = append(orders, order)
	}
	return orders, nil
}

func parseRecord(record []string, col map[string]int, format Format) (*core.Order, error) {
	field := func(name string) string {
		return record[col[name]]
	}

	id, err := strconv.ParseInt(field("ID"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad id %q: %w", field("ID"), err)
	}

	if format == FormatAddCancel && field("Action") == "Cancel" {
		target, err := strconv.ParseInt(field("Cancel_Target_ID"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad cancel target %q: %w", field("Cancel_Target_ID"), err)
		}
		order, err := core.NewCancelOrder(id, target)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", id, err)
		}
		return order, nil
	}

	if format == FormatAddCancel && field("Action") != "Add" {
		return nil, fmt.Errorf("order %d: unknown action %q", id, field("Action"))
	}

	side, err := parseSide(field("Side"))
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", id, err)
	}

	vol, err := strconv.ParseInt(field("Volume"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("order %d: bad volume %q: %w", id, field("Volume"), err)
	}
	volume := fpdecimal.FromInt(vol)

	switch field("Type") {
	case "M":
		// Market records carry a sentinel price; it is ignored.
		order, err := core.NewMarketOrder(id, field("Ticker"), side, volume)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", id, err)
		}
		return order, nil
	case "L":
		price, err := fpdecimal.FromString(field("Price"))
		if err != nil {
			return nil, fmt.Errorf("order %d: bad price %q: %w", id, field("Price"), err)
		}
		order, err := core.NewLimitOrder(id, field("Ticker"), side, volume, price)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", id, err)
		}
		return order, nil
	default:
		return nil, fmt.Errorf("order %d: unknown type %q", id, field("Type"))
	}
}

func parseSide(s string) (core.Side, error) {
	switch s {
	case "Buy":
		return core.Buy, nil
	case "Sell":
		return core.Sell, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}
