package core

import (
	"sort"

	"github.com/nikolaydubina/fpdecimal"
)

// LadderLevel is one row of the trading ladder: the aggregate resting
// buy and sell volume at a single price.
type LadderLevel struct {
	Price     fpdecimal.Decimal
	BidVolume fpdecimal.Decimal
	AskVolume fpdecimal.Decimal
}

// Level is one aggregated price level of a single side
type Level struct {
	Price  fpdecimal.Decimal
	Volume fpdecimal.Decimal
}

// BookSnapshot is an ordered view of one ticker's outstanding levels:
// asks highest-to-lowest, then bids highest-to-lowest.
type BookSnapshot struct {
	Ticker string
	Asks   []Level
	Bids   []Level
}

// Ladder returns the union of outstanding buy and sell price levels for
// the ticker, sorted by price descending, with per-price volume sums.
// Purely a read; the book is never mutated.
func (e *Engine) Ladder(ticker string) []LadderLevel {
	b, ok := e.books[ticker]
	if !ok {
		return nil
	}

	byPrice := make(map[string]*LadderLevel)
	prices := make([]fpdecimal.Decimal, 0)

	collect := func(bs *bookSide) {
		for lvl := bs.head; lvl != nil; lvl = lvl.next {
			row, ok := byPrice[lvl.priceStr]
			if !ok {
				row = &LadderLevel{
					Price:     lvl.price,
					BidVolume: fpdecimal.Zero,
					AskVolume: fpdecimal.Zero,
				}
				byPrice[lvl.priceStr] = row
				prices = append(prices, lvl.price)
			}
			if bs.side == Buy {
				row.BidVolume = lvl.totalVolume()
			} else {
				row.AskVolume = lvl.totalVolume()
			}
		}
	}

	collect(b.bids)
	collect(b.asks)

	sort.Slice(prices, func(i, j int) bool {
		return prices[i].GreaterThan(prices[j])
	})

	ladder := make([]LadderLevel, 0, len(prices))
	for _, p := range prices {
		ladder = append(ladder, *byPrice[p.String()])
	}
	return ladder
}

// Snapshot returns the ticker's outstanding levels with aggregate
// volume per level: asks highest-to-lowest, then bids highest-to-lowest.
func (e *Engine) Snapshot(ticker string) BookSnapshot {
	snap := BookSnapshot{Ticker: ticker}

	b, ok := e.books[ticker]
	if !ok {
		return snap
	}

	// Asks are kept lowest-first; walk from the tail for highest-first.
	for lvl := b.asks.tail; lvl != nil; lvl = lvl.prev {
		snap.Asks = append(snap.Asks, Level{Price: lvl.price, Volume: lvl.totalVolume()})
	}

	// Bids are kept highest-first already.
	for lvl := b.bids.head; lvl != nil; lvl = lvl.next {
		snap.Bids = append(snap.Bids, Level{Price: lvl.price, Volume: lvl.totalVolume()})
	}

	return snap
}

// PnL reports the running total of traded value: credited on buy-side
// fills, debited on sell-side fills, untouched by cancels.
func (e *Engine) PnL() fpdecimal.Decimal {
	return e.pnl
}

// RestingVolume returns the remaining volume of the resting order with
// the given id, and whether it is currently on a book.
func (e *Engine) RestingVolume(id int64) (fpdecimal.Decimal, bool) {
	ref, ok := e.index[id]
	if !ok {
		return fpdecimal.Zero, false
	}

	b, ok := e.books[ref.Ticker]
	if !ok {
		return fpdecimal.Zero, false
	}

	lvl, ok := b.sideOf(ref.Side).levels[ref.Price.String()]
	if !ok {
		return fpdecimal.Zero, false
	}

	for _, o := range lvl.orders {
		if o.ID() == id {
			return o.Volume(), true
		}
	}
	return fpdecimal.Zero, false
}
