package core

import (
	"context"
	"fmt"

	"github.com/erain9/bookmatch/pkg/messaging"
	"github.com/nikolaydubina/fpdecimal"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// bookRef locates a resting limit order in the book for O(1) cancels
type bookRef struct {
	Ticker string
	Side   Side
	Price  fpdecimal.Decimal
}

// Engine implements the price-time priority matching algorithm. It is
// the sole owner of the books, the cancel index, and the PnL
// accumulator; all three mutate together inside Apply and never
// partially. The Engine is single-writer by design: one logical flow
// applies events in arrival order, queries run between applications.
type Engine struct {
	books  map[string]*book
	index  map[int64]bookRef
	pnl    fpdecimal.Decimal
	sender messaging.Sender
	logger zerolog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithSender attaches a publisher for execution reports. Events that
// produce fills are published after each Apply.
func WithSender(sender messaging.Sender) Option {
	return func(e *Engine) {
		e.sender = sender
	}
}

// WithLogger overrides the engine's logger
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an empty matching engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		books:  make(map[string]*book),
		index:  make(map[int64]bookRef),
		pnl:    fpdecimal.Zero,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply processes a single order event in arrival order: a cancel
// removes its target from the book, a market add sweeps the opposite
// side and discards any remainder, a limit add sweeps eligible levels
// and rests its remainder. Apply is the only mutating operation.
func (e *Engine) Apply(ctx context.Context, order *Order) *Done {
	done := newDone(order)

	switch order.Action() {
	case ActionCancel:
		e.applyCancel(order, done)
	case ActionAdd:
		e.applyAdd(order, done)
	default:
		panic(fmt.Sprintf("unrecognized order action: %q", order.Action()))
	}

	e.publish(ctx, done)
	return done
}

func (e *Engine) applyAdd(order *Order, done *Done) {
	if !order.IsMarketOrder() && !order.IsLimitOrder() {
		panic(fmt.Sprintf("unrecognized order type: %q", order.orderType))
	}

	b := e.bookFor(order.Ticker())
	e.sweep(b, order, done)

	done.Left = order.Volume()

	if order.IsLimitOrder() && order.Volume().GreaterThan(fpdecimal.Zero) {
		if ref, exists := e.index[order.ID()]; exists {
			panic(fmt.Sprintf("order id %d already resting at %s %s %s",
				order.ID(), ref.Ticker, ref.Side, ref.Price))
		}

		b.sideOf(order.Side()).append(order)
		e.index[order.ID()] = bookRef{
			Ticker: order.Ticker(),
			Side:   order.Side(),
			Price:  order.Price(),
		}
		done.Stored = true
	}
}

// sweep matches the incoming order against the opposite side, walking
// levels best-price-first and draining each level's queue from the
// front. Levels are strictly price-ordered, so for limit orders the
// first level that fails the price check ends the sweep.
func (e *Engine) sweep(b *book, taker *Order, done *Done) {
	opp := b.sideOf(taker.Side().Opposite())

	for taker.Volume().GreaterThan(fpdecimal.Zero) {
		lvl := opp.best()
		if lvl == nil {
			return
		}

		if taker.IsLimitOrder() && !priceCrosses(taker.Side(), taker.Price(), lvl.price) {
			return
		}

		for len(lvl.orders) > 0 && taker.Volume().GreaterThan(fpdecimal.Zero) {
			maker := lvl.orders[0]

			matched := minDecimal(taker.Volume(), maker.Volume())
			taker.DecreaseVolume(matched)
			maker.DecreaseVolume(matched)

			e.accrue(taker.Side(), matched, lvl.price)
			done.appendFill(maker.ID(), lvl.price, matched)

			if maker.Volume().Equal(fpdecimal.Zero) {
				lvl.orders = lvl.orders[1:]
				delete(e.index, maker.ID())
			}
		}

		if len(lvl.orders) == 0 {
			opp.removeLevel(lvl)
			continue
		}

		// Taker exhausted at a partially drained level
		return
	}
}

func (e *Engine) applyCancel(order *Order, done *Done) {
	targetID := order.CancelTarget()

	ref, ok := e.index[targetID]
	if !ok {
		e.logger.Warn().
			Int64("cancel_target_id", targetID).
			Msg("Cancel target not found, skipping to next order")
		done.CancelMiss = true
		return
	}

	b, ok := e.books[ref.Ticker]
	if !ok {
		panic(fmt.Sprintf("cancel index references unknown ticker %q", ref.Ticker))
	}

	removed := b.sideOf(ref.Side).removeOrder(ref.Price, targetID)
	if removed == nil {
		panic(fmt.Sprintf("cancel index out of sync with book for order %d", targetID))
	}

	delete(e.index, targetID)
	done.Canceled = removed
}

// accrue updates the PnL for one match: buy-side fills lift resting
// sells and credit vol x price, sell-side fills hit resting buys and
// debit vol x price. Cancels never touch PnL.
func (e *Engine) accrue(takerSide Side, volume, price fpdecimal.Decimal) {
	traded := price.Mul(volume)
	if takerSide == Buy {
		e.pnl = e.pnl.Add(traded)
	} else {
		e.pnl = e.pnl.Sub(traded)
	}
}

// bookFor returns the ticker's book, creating it on first use
func (e *Engine) bookFor(ticker string) *book {
	b, ok := e.books[ticker]
	if !ok {
		b = newBook(ticker)
		e.books[ticker] = b
	}
	return b
}

// Reset clears all books, the cancel index, and the PnL accumulator
// together, returning the engine to its initial state.
func (e *Engine) Reset() {
	e.books = make(map[string]*book)
	e.index = make(map[int64]bookRef)
	e.pnl = fpdecimal.Zero
}

func (e *Engine) publish(ctx context.Context, done *Done) {
	if e.sender == nil || len(done.Fills) == 0 {
		return
	}

	msg := done.ToMessagingDoneMessage()
	if msg == nil {
		return
	}

	if err := e.sender.SendDoneMessage(ctx, msg); err != nil {
		e.logger.Error().Err(err).
			Int64("order_id", done.Order.ID()).
			Msg("Failed to publish execution report")
	}
}

// priceCrosses checks if a limit order's price is marketable against a
// book level on the opposite side. Matching at exactly the limit price
// is allowed.
func priceCrosses(takerSide Side, limitPrice, levelPrice fpdecimal.Decimal) bool {
	if takerSide == Buy {
		return levelPrice.LessThanOrEqual(limitPrice)
	}
	return levelPrice.GreaterThanOrEqual(limitPrice)
}

// minDecimal returns the minimum of two decimals
func minDecimal(a, b fpdecimal.Decimal) fpdecimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
