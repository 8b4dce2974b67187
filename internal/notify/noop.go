package notify

import (
	"context"

	"github.com/shopspring/decimal"
)

// Noop discards all events. Used in tests and NATS-less deployments.
type Noop struct{}

func (Noop) BidRaised(ctx context.Context, auctionID int64, principal string, amount decimal.Decimal) {
}

func (Noop) AuctionEnded(ctx context.Context, auctionID int64, winner string, amount decimal.Decimal) {
}
