package core

import (
	"encoding/json"
	"fmt"

	"github.com/nikolaydubina/fpdecimal"
)

// Side represents buy or sell side of the order
type Side int

// Order sides
const (
	Sell Side = iota
	Buy
)

// String returns side as string
func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the other side of the book
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// OrderType represents type of the order
type OrderType string

// Order types
const (
	TypeMarket OrderType = "MARKET"
	TypeLimit  OrderType = "LIMIT"
)

// Action represents what an order event does to the book
type Action string

// Order actions
const (
	ActionAdd    Action = "ADD"
	ActionCancel Action = "CANCEL"
)

// Order stores information about a single order event. Add orders are
// mutated in place during matching (volume decreases as fills occur);
// cancel orders only carry the id of the resting order to remove.
type Order struct {
	id           int64
	ticker       string
	action       Action
	orderType    OrderType
	side         Side
	price        fpdecimal.Decimal
	volume       fpdecimal.Decimal
	originalVol  fpdecimal.Decimal
	cancelTarget int64
}

// NewMarketOrder creates a new market order. Market orders carry no price;
// any unfilled remainder is discarded after matching.
func NewMarketOrder(id int64, ticker string, side Side, volume fpdecimal.Decimal) (*Order, error) {
	if ticker == "" {
		return nil, ErrInvalidTicker
	}

	if side != Buy && side != Sell {
		return nil, ErrInvalidSide
	}

	if volume.LessThanOrEqual(fpdecimal.Zero) {
		return nil, ErrInvalidVolume
	}

	return &Order{
		id:          id,
		ticker:      ticker,
		action:      ActionAdd,
		orderType:   TypeMarket,
		side:        side,
		price:       fpdecimal.Zero,
		volume:      volume,
		originalVol: volume,
	}, nil
}

// NewLimitOrder creates a new limit order
func NewLimitOrder(id int64, ticker string, side Side, volume, price fpdecimal.Decimal) (*Order, error) {
	if ticker == "" {
		return nil, ErrInvalidTicker
	}

	if side != Buy && side != Sell {
		return nil, ErrInvalidSide
	}

	if volume.LessThanOrEqual(fpdecimal.Zero) {
		return nil, ErrInvalidVolume
	}

	if price.LessThanOrEqual(fpdecimal.Zero) {
		return nil, ErrInvalidPrice
	}

	return &Order{
		id:          id,
		ticker:      ticker,
		action:      ActionAdd,
		orderType:   TypeLimit,
		side:        side,
		price:       price,
		volume:      volume,
		originalVol: volume,
	}, nil
}

// NewCancelOrder creates a cancel event targeting a resting limit order
func NewCancelOrder(id, cancelTargetID int64) (*Order, error) {
	if cancelTargetID < 0 {
		return nil, ErrInvalidCancelTarget
	}

	return &Order{
		id:           id,
		action:       ActionCancel,
		cancelTarget: cancelTargetID,
	}, nil
}

// ID returns the feed-assigned order id
func (o *Order) ID() int64 {
	return o.id
}

// Ticker returns the instrument identifier
func (o *Order) Ticker() string {
	return o.ticker
}

// Action returns the order action
func (o *Order) Action() Action {
	return o.action
}

// Side returns side of the Order
func (o *Order) Side() Side {
	return o.side
}

// Price returns Price field copy
func (o *Order) Price() fpdecimal.Decimal {
	return o.price
}

// Volume returns the remaining unfilled volume
func (o *Order) Volume() fpdecimal.Decimal {
	return o.volume
}

// OriginalVolume returns the volume the order arrived with
func (o *Order) OriginalVolume() fpdecimal.Decimal {
	return o.originalVol
}

// DecreaseVolume reduces the remaining volume by the matched amount
func (o *Order) DecreaseVolume(volume fpdecimal.Decimal) {
	o.volume = o.volume.Sub(volume)
}

// CancelTarget returns the id of the resting order a cancel removes
func (o *Order) CancelTarget() int64 {
	return o.cancelTarget
}

// IsCancel returns true if the Order is a cancel event
func (o *Order) IsCancel() bool {
	return o.action == ActionCancel
}

// IsMarketOrder returns true if Order is MARKET
func (o *Order) IsMarketOrder() bool {
	return o.orderType == TypeMarket
}

// IsLimitOrder returns true if Order is LIMIT
func (o *Order) IsLimitOrder() bool {
	return o.orderType == TypeLimit
}

// MarshalJSON implements custom JSON marshaling for Order
func (o *Order) MarshalJSON() ([]byte, error) {
	type OrderJSON struct {
		ID           int64     `json:"id"`
		Ticker       string    `json:"ticker"`
		Action       Action    `json:"action"`
		OrderType    OrderType `json:"orderType"`
		Side         string    `json:"side"`
		Price        string    `json:"price"`
		Volume       string    `json:"volume"`
		CancelTarget int64     `json:"cancelTarget,omitempty"`
	}

	return json.Marshal(OrderJSON{
		ID:           o.id,
		Ticker:       o.ticker,
		Action:       o.action,
		OrderType:    o.orderType,
		Side:         o.side.String(),
		Price:        o.price.String(),
		Volume:       o.volume.String(),
		CancelTarget: o.cancelTarget,
	})
}

// String implements fmt.Stringer interface
func (o *Order) String() string {
	if o.IsCancel() {
		return fmt.Sprintf("cancel(%d -> %d)", o.id, o.cancelTarget)
	}
	return fmt.Sprintf("%s %s %s %s@%s", o.orderType, o.side, o.ticker, o.volume, o.price)
}
