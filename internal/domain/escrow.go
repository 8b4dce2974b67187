package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EscrowEntry is the refundable balance held for a principal on one auction.
// It accumulates every bid of theirs that was superseded and is zeroed by a
// successful withdrawal.
type EscrowEntry struct {
	AuctionID int64
	Principal string
	Amount    decimal.Decimal
	UpdatedAt time.Time
}
