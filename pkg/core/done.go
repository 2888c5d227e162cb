package core

import (
	"github.com/erain9/bookmatch/pkg/messaging"
	"github.com/nikolaydubina/fpdecimal"
)

// Fill records one execution against a resting order
type Fill struct {
	MakerID int64
	Price   fpdecimal.Decimal
	Volume  fpdecimal.Decimal
}

// Done contains information about the result of applying one order event
type Done struct {
	// Order is the event that was applied
	Order *Order
	// Fills executed against resting orders, in match order
	Fills []Fill
	// Processed is the total volume executed for the incoming order
	Processed fpdecimal.Decimal
	// Left is the volume remaining after matching. For market orders
	// this remainder is discarded, never rested.
	Left fpdecimal.Decimal
	// Stored reports whether a limit remainder now rests on the book
	Stored bool
	// Canceled is the resting order removed by a cancel event, if any
	Canceled *Order
	// CancelMiss reports a cancel whose target was not found; the
	// event is skipped and the stream continues.
	CancelMiss bool
}

func newDone(order *Order) *Done {
	return &Done{
		Order:     order,
		Fills:     make([]Fill, 0),
		Processed: fpdecimal.Zero,
		Left:      fpdecimal.Zero,
	}
}

func (d *Done) appendFill(makerID int64, price, volume fpdecimal.Decimal) {
	d.Fills = append(d.Fills, Fill{
		MakerID: makerID,
		Price:   price,
		Volume:  volume,
	})
	d.Processed = d.Processed.Add(volume)
}

// ToMessagingDoneMessage converts the Done object to a messaging.DoneMessage
func (d *Done) ToMessagingDoneMessage() *messaging.DoneMessage {
	if d == nil || d.Order == nil {
		return nil
	}

	trades := make([]messaging.Trade, 0, len(d.Fills))
	for _, f := range d.Fills {
		trades = append(trades, messaging.Trade{
			MakerID: f.MakerID,
			Price:   f.Price.String(),
			Volume:  f.Volume.String(),
		})
	}

	return &messaging.DoneMessage{
		OrderID:         d.Order.ID(),
		Ticker:          d.Order.Ticker(),
		Side:            d.Order.Side().String(),
		ExecutedVolume:  d.Processed.String(),
		RemainingVolume: d.Left.String(),
		Stored:          d.Stored,
		Trades:          trades,
	}
}
