package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/anans7/auction-NFT/internal/clock"
	"github.com/anans7/auction-NFT/internal/domain"
)

type BidRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetAuctionForUpdate(ctx context.Context, id int64) (domain.Auction, error)
	EscrowBalance(ctx context.Context, auctionID int64, principal string) (decimal.Decimal, error)
	AddEscrow(ctx context.Context, auctionID int64, principal string, amount decimal.Decimal) error
	ZeroEscrow(ctx context.Context, auctionID int64, principal string) error
	SetHighestBid(ctx context.Context, auctionID int64, bidder string, amount decimal.Decimal) error
}

// BidService admits and ranks bids. Every mutation runs under the auction row
// lock, so concurrent bids on one auction serialize while other auctions
// proceed independently.
type BidService struct {
	repo     BidRepository
	notifier Notifier
	clock    clock.Clock
}

func NewBidService(repo BidRepository, notifier Notifier, clk clock.Clock) *BidService {
	return &BidService{
		repo:     repo,
		notifier: notifier,
		clock:    clk,
	}
}

type BidInput struct {
	AuctionID int64
	Bidder    string
	// Amount is both the bid value and the escrowed funds attached to it.
	Amount decimal.Decimal
}

// Bid places a first-time bid. The displaced highest bid, if any, moves to the
// displaced bidder's escrow entry in the same transaction.
func (s *BidService) Bid(ctx context.Context, in BidInput) (domain.Auction, error) {
	if in.Bidder == "" {
		return domain.Auction{}, domain.ErrPrincipalRequired
	}
	if !in.Amount.IsPositive() {
		return domain.Auction{}, domain.ErrInvalidAmount
	}

	now := s.clock.Now()
	var result domain.Auction

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		auction, err := s.repo.GetAuctionForUpdate(txCtx, in.AuctionID)
		if err != nil {
			return err
		}

		if in.Bidder == auction.Seller {
			return domain.ErrSellerCannotBid
		}
		if auction.Sold {
			return domain.ErrAuctionClosed
		}
		if in.Bidder == auction.HighestBidder {
			return domain.ErrAlreadyHighestBidder
		}

		balance, err := s.repo.EscrowBalance(txCtx, in.AuctionID, in.Bidder)
		if err != nil {
			return err
		}
		// Outbid principals already have funds in escrow and must raise
		// through IncreaseBid; admitting a fresh bid here would strand them.
		if balance.IsPositive() {
			return domain.ErrHasEscrowBalance
		}

		if auction.Expired(now) {
			return domain.ErrAuctionClosed
		}
		if in.Amount.LessThan(auction.FloorPrice) {
			return domain.ErrBidTooLow
		}
		if in.Amount.LessThanOrEqual(auction.HighestBid) {
			return domain.ErrBidTooLow
		}

		if auction.HasBid() {
			if err := s.repo.AddEscrow(txCtx, in.AuctionID, auction.HighestBidder, auction.HighestBid); err != nil {
				return err
			}
		}
		if err := s.repo.SetHighestBid(txCtx, in.AuctionID, in.Bidder, in.Amount); err != nil {
			return err
		}

		auction.HighestBidder = in.Bidder
		auction.HighestBid = in.Amount
		result = auction
		return nil
	})
	if err != nil {
		return domain.Auction{}, err
	}

	s.notifier.BidRaised(ctx, result.ID, result.HighestBidder, result.HighestBid)
	return result, nil
}

type IncreaseBidInput struct {
	AuctionID int64
	Bidder    string
	// AddedAmount is the additional escrowed funds attached; the new bid is
	// AddedAmount plus the caller's existing escrow balance.
	AddedAmount decimal.Decimal
}

// IncreaseBid lets a previously outbid principal retake the lead by topping up
// their escrowed balance. The current highest bidder is deliberately not
// eligible and has no path to raise their own bid.
func (s *BidService) IncreaseBid(ctx context.Context, in IncreaseBidInput) (domain.Auction, error) {
	if in.Bidder == "" {
		return domain.Auction{}, domain.ErrPrincipalRequired
	}
	if !in.AddedAmount.IsPositive() {
		return domain.Auction{}, domain.ErrInvalidAmount
	}

	now := s.clock.Now()
	var result domain.Auction

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		auction, err := s.repo.GetAuctionForUpdate(txCtx, in.AuctionID)
		if err != nil {
			return err
		}

		if in.Bidder == auction.HighestBidder {
			return domain.ErrNotEligible
		}
		balance, err := s.repo.EscrowBalance(txCtx, in.AuctionID, in.Bidder)
		if err != nil {
			return err
		}
		if !balance.IsPositive() {
			return domain.ErrNotEligible
		}

		if auction.Expired(now) {
			return domain.ErrAuctionClosed
		}
		total := in.AddedAmount.Add(balance)
		if total.LessThanOrEqual(auction.HighestBid) {
			return domain.ErrBidTooLow
		}

		if auction.HasBid() {
			if err := s.repo.AddEscrow(txCtx, in.AuctionID, auction.HighestBidder, auction.HighestBid); err != nil {
				return err
			}
		}
		if err := s.repo.ZeroEscrow(txCtx, in.AuctionID, in.Bidder); err != nil {
			return err
		}
		if err := s.repo.SetHighestBid(txCtx, in.AuctionID, in.Bidder, total); err != nil {
			return err
		}

		auction.HighestBidder = in.Bidder
		auction.HighestBid = total
		result = auction
		return nil
	})
	if err != nil {
		return domain.Auction{}, err
	}

	s.notifier.BidRaised(ctx, result.ID, result.HighestBidder, result.HighestBid)
	return result, nil
}
