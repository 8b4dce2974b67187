package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/anans7/auction-NFT/internal/domain"
)

// CustodyService holds listed assets and moves them on request. The service
// only records custody intent; storage and transfer mechanics live behind this
// interface.
type CustodyService interface {
	ApprovedFor(ctx context.Context, asset domain.AssetRef, owner string) (bool, error)
	TransferIn(ctx context.Context, asset domain.AssetRef, from, to string) error
	TransferOut(ctx context.Context, asset domain.AssetRef, from, to string) error
}

// PaymentRail executes fund transfers (payouts, refunds, fees). Retries and
// reconciliation are the rail's problem, not ours.
type PaymentRail interface {
	Pay(ctx context.Context, to string, amount decimal.Decimal) error
}

// Notifier emits state-change events to observers. Emission happens after the
// transaction commits and never affects operation outcome.
type Notifier interface {
	BidRaised(ctx context.Context, auctionID int64, principal string, amount decimal.Decimal)
	AuctionEnded(ctx context.Context, auctionID int64, winner string, amount decimal.Decimal)
}
