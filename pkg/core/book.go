package core

import (
	"fmt"
	"strings"

	"github.com/nikolaydubina/fpdecimal"
)

// priceLevel is one price point on a book side: a FIFO queue of resting
// orders in strict arrival order. Levels exist only while non-empty.
type priceLevel struct {
	orders   []*Order
	priceStr string
	price    fpdecimal.Decimal
	next     *priceLevel
	prev     *priceLevel
}

func newPriceLevel(price fpdecimal.Decimal) *priceLevel {
	return &priceLevel{
		orders:   make([]*Order, 0, 4),
		priceStr: price.String(),
		price:    price,
	}
}

// totalVolume sums the remaining volume of every order resting at the level
func (pl *priceLevel) totalVolume() fpdecimal.Decimal {
	total := fpdecimal.Zero
	for _, o := range pl.orders {
		total = total.Add(o.Volume())
	}
	return total
}

// bookSide holds the price levels of one side of a single instrument's
// book as a doubly-linked list ordered best-price-first (bids: highest
// first, asks: lowest first) plus a price lookup map.
type bookSide struct {
	side   Side
	head   *priceLevel
	tail   *priceLevel
	levels map[string]*priceLevel
}

func newBookSide(side Side) *bookSide {
	return &bookSide{
		side:   side,
		levels: make(map[string]*priceLevel),
	}
}

// best returns the highest-priority level, nil when the side is empty
func (bs *bookSide) best() *priceLevel {
	return bs.head
}

// betterPrice reports whether a beats b under this side's priority
func (bs *bookSide) betterPrice(a, b fpdecimal.Decimal) bool {
	if bs.side == Buy {
		return a.GreaterThan(b)
	}
	return a.LessThan(b)
}

// append adds an order at the back of its price level's queue, creating
// the level at its sorted position when it does not exist yet.
func (bs *bookSide) append(order *Order) {
	priceStr := order.Price().String()

	if lvl, ok := bs.levels[priceStr]; ok {
		lvl.orders = append(lvl.orders, order)
		return
	}

	lvl := newPriceLevel(order.Price())
	lvl.orders = append(lvl.orders, order)
	bs.levels[priceStr] = lvl

	if bs.head == nil {
		bs.head = lvl
		bs.tail = lvl
		return
	}

	if bs.betterPrice(lvl.price, bs.head.price) {
		lvl.next = bs.head
		bs.head.prev = lvl
		bs.head = lvl
		return
	}

	if !bs.betterPrice(lvl.price, bs.tail.price) {
		lvl.prev = bs.tail
		bs.tail.next = lvl
		bs.tail = lvl
		return
	}

	current := bs.head
	for current != nil && bs.betterPrice(current.price, lvl.price) {
		current = current.next
	}
	lvl.next = current
	lvl.prev = current.prev
	current.prev.next = lvl
	current.prev = lvl
}

// removeLevel unlinks a (usually drained) level from the side
func (bs *bookSide) removeLevel(lvl *priceLevel) {
	delete(bs.levels, lvl.priceStr)

	if lvl.prev != nil {
		lvl.prev.next = lvl.next
	} else {
		bs.head = lvl.next
	}

	if lvl.next != nil {
		lvl.next.prev = lvl.prev
	} else {
		bs.tail = lvl.prev
	}
}

// removeOrder takes the order with the given id out of the level at the
// given price, wherever it sits in the queue, and drops the level if
// that left it empty. Returns nil when no such order rests there.
func (bs *bookSide) removeOrder(price fpdecimal.Decimal, id int64) *Order {
	lvl, ok := bs.levels[price.String()]
	if !ok {
		return nil
	}

	for i, o := range lvl.orders {
		if o.ID() != id {
			continue
		}
		lvl.orders = append(lvl.orders[:i], lvl.orders[i+1:]...)
		if len(lvl.orders) == 0 {
			bs.removeLevel(lvl)
		}
		return o
	}

	return nil
}

// String implements fmt.Stringer interface
func (bs *bookSide) String() string {
	sb := strings.Builder{}
	for current := bs.head; current != nil; current = current.next {
		sb.WriteString(fmt.Sprintf("\n%s -> orders: %d", current.priceStr, len(current.orders)))
	}
	return sb.String()
}

// book is one instrument's pair of sides. Books are owned exclusively by
// the Engine; nothing outside pkg/core mutates them.
type book struct {
	ticker string
	bids   *bookSide
	asks   *bookSide
}

func newBook(ticker string) *book {
	return &book{
		ticker: ticker,
		bids:   newBookSide(Buy),
		asks:   newBookSide(Sell),
	}
}

func (b *book) sideOf(side Side) *bookSide {
	if side == Buy {
		return b.bids
	}
	return b.asks
}
