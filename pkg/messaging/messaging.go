package messaging

import "context"

// Sender defines an interface for publishing execution reports.
// This keeps the core package decoupled from specific transports
// like Kafka in the kafka subpackage.
type Sender interface {
	SendDoneMessage(ctx context.Context, done *DoneMessage) error
	Close() error
}

// DoneMessage represents the wire form of one processed order event
type DoneMessage struct {
	OrderID         int64   `json:"orderId"`
	Ticker          string  `json:"ticker"`
	Side            string  `json:"side"`
	ExecutedVolume  string  `json:"executedVolume"`
	RemainingVolume string  `json:"remainingVolume"`
	Stored          bool    `json:"stored"`
	Trades          []Trade `json:"trades,omitempty"`
}

// Trade represents a single execution against a resting order
type Trade struct {
	MakerID int64  `json:"makerId"`
	Price   string `json:"price"`
	Volume  string `json:"volume"`
}
