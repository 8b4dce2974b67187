package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anans7/auction-NFT/internal/clock"
	"github.com/anans7/auction-NFT/internal/domain"
)

type LifecycleRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetAuctionForUpdate(ctx context.Context, id int64) (domain.Auction, error)
	AddEscrow(ctx context.Context, auctionID int64, principal string, amount decimal.Decimal) error
	UpdateAuction(ctx context.Context, auction domain.Auction) error
}

// LifecycleService drives auctions to their terminal states: cancellation
// before expiry and finalization by the seller.
type LifecycleService struct {
	repo              LifecycleRepository
	custody           CustodyService
	rail              PaymentRail
	notifier          Notifier
	clock             clock.Clock
	escrowPrincipal   string
	platformPrincipal string
	cancelFee         decimal.Decimal
}

type LifecycleConfig struct {
	// EscrowPrincipal is the principal this service custodies assets under
	// while an auction is open.
	EscrowPrincipal string
	// PlatformPrincipal receives cancellation fees.
	PlatformPrincipal string
	// CancelFee is the exact fee a seller must attach to cancel.
	CancelFee decimal.Decimal
}

func NewLifecycleService(repo LifecycleRepository, custody CustodyService, rail PaymentRail, notifier Notifier, clk clock.Clock, cfg LifecycleConfig) *LifecycleService {
	return &LifecycleService{
		repo:              repo,
		custody:           custody,
		rail:              rail,
		notifier:          notifier,
		clock:             clk,
		escrowPrincipal:   cfg.EscrowPrincipal,
		platformPrincipal: cfg.PlatformPrincipal,
		cancelFee:         cfg.CancelFee,
	}
}

// Cancel settles an open auction early on the seller's request. The displaced
// highest bid becomes withdrawable escrow, the fee goes to the platform, and
// the asset returns to the seller. Every sub-step commits or none do.
//
// Ended stays false here: a cancelled auction can still reach AuctionEnd. The
// Sold flag and the zeroed deadline are what block further bidding.
func (s *LifecycleService) Cancel(ctx context.Context, auctionID int64, caller string, fee decimal.Decimal) (domain.Auction, error) {
	if caller == "" {
		return domain.Auction{}, domain.ErrPrincipalRequired
	}

	now := s.clock.Now()
	var result domain.Auction

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		auction, err := s.repo.GetAuctionForUpdate(txCtx, auctionID)
		if err != nil {
			return err
		}

		if auction.Ended {
			return domain.ErrAlreadyFinalized
		}
		if caller != auction.Seller {
			return domain.ErrNotSeller
		}
		if !now.Before(auction.EndTime) || auction.Sold {
			return domain.ErrAuctionClosed
		}
		if !fee.Equal(s.cancelFee) {
			return domain.ErrWrongFee
		}

		if auction.HasBid() {
			if err := s.repo.AddEscrow(txCtx, auctionID, auction.HighestBidder, auction.HighestBid); err != nil {
				return err
			}
		}

		auction.EndTime = time.Unix(0, 0).UTC()
		auction.CustodyOwner = auction.Seller
		auction.HighestBidder = domain.NoBidder
		auction.HighestBid = decimal.Zero
		auction.Sold = true

		if err := s.repo.UpdateAuction(txCtx, auction); err != nil {
			return err
		}
		if err := s.rail.Pay(txCtx, s.platformPrincipal, fee); err != nil {
			return domain.ErrPaymentFailed
		}
		if err := s.custody.TransferOut(txCtx, auction.Asset, s.escrowPrincipal, auction.Seller); err != nil {
			return domain.ErrPaymentFailed
		}

		result = auction
		return nil
	})
	if err != nil {
		return domain.Auction{}, err
	}
	return result, nil
}

// End finalizes an auction: the recorded seller is paid the highest bid, then
// seller and custody are reassigned to the caller and the asset is released to
// them. The asset goes to the finalizing seller, not the winning bidder.
// Neither the deadline nor the Sold flag gates finalization.
func (s *LifecycleService) End(ctx context.Context, auctionID int64, caller string) (domain.Auction, error) {
	if caller == "" {
		return domain.Auction{}, domain.ErrPrincipalRequired
	}

	var result domain.Auction

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		auction, err := s.repo.GetAuctionForUpdate(txCtx, auctionID)
		if err != nil {
			return err
		}

		if caller != auction.Seller {
			return domain.ErrNotSeller
		}
		if auction.Ended {
			return domain.ErrAlreadyFinalized
		}

		proceeds := auction.HighestBid
		payee := auction.Seller

		auction.Ended = true
		auction.Seller = caller
		auction.CustodyOwner = caller
		auction.HighestBid = decimal.Zero

		if err := s.repo.UpdateAuction(txCtx, auction); err != nil {
			return err
		}
		if err := s.rail.Pay(txCtx, payee, proceeds); err != nil {
			return domain.ErrPaymentFailed
		}
		if err := s.custody.TransferOut(txCtx, auction.Asset, s.escrowPrincipal, caller); err != nil {
			return domain.ErrPaymentFailed
		}

		result = auction
		return nil
	})
	if err != nil {
		return domain.Auction{}, err
	}

	// Emitted with the post-reset fields: the bidder survives the reset, the
	// amount is already zero.
	s.notifier.AuctionEnded(ctx, result.ID, result.HighestBidder, result.HighestBid)
	return result, nil
}
