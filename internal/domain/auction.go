package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoBidder is the highest-bidder value of an auction without an admissible bid.
const NoBidder = ""

// AssetRef identifies a custodied asset: the custody contract plus its token id.
type AssetRef struct {
	Contract string
	TokenID  string
}

func (a AssetRef) IsZero() bool {
	return a.Contract == "" || a.TokenID == ""
}

// Auction is a single-asset listing. Records are never deleted; Sold and Ended
// mark the terminal states.
type Auction struct {
	ID            int64
	Asset         AssetRef
	Seller        string
	CustodyOwner  string
	EndTime       time.Time
	FloorPrice    decimal.Decimal
	HighestBidder string
	HighestBid    decimal.Decimal
	Sold          bool
	Ended         bool
	CreatedAt     time.Time
}

// HasBid reports whether the auction currently carries an admissible bid.
func (a Auction) HasBid() bool {
	return a.HighestBidder != NoBidder
}

// Expired reports whether bidding has closed relative to now. Bids placed
// exactly at the deadline are still admitted.
func (a Auction) Expired(now time.Time) bool {
	return now.After(a.EndTime)
}
