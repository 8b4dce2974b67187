package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anans7/auction-NFT/internal/clock"
	"github.com/anans7/auction-NFT/internal/domain"
)

type ListingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateAuction(ctx context.Context, auction domain.Auction) (int64, error)
	GetAuction(ctx context.Context, id int64) (domain.Auction, error)
}

// ListingService registers new auctions and serves auction reads.
type ListingService struct {
	repo            ListingRepository
	custody         CustodyService
	clock           clock.Clock
	escrowPrincipal string
}

func NewListingService(repo ListingRepository, custody CustodyService, clk clock.Clock, escrowPrincipal string) *ListingService {
	return &ListingService{
		repo:            repo,
		custody:         custody,
		clock:           clk,
		escrowPrincipal: escrowPrincipal,
	}
}

type CreateItemInput struct {
	Seller       string
	Asset        domain.AssetRef
	DurationDays int
	FloorPrice   decimal.Decimal
}

// CreateItem registers a listing and pulls the asset into escrow custody. The
// record and the custody transfer commit together or not at all.
func (s *ListingService) CreateItem(ctx context.Context, in CreateItemInput) (domain.Auction, error) {
	if in.Seller == "" {
		return domain.Auction{}, domain.ErrPrincipalRequired
	}
	if in.Asset.IsZero() {
		return domain.Auction{}, domain.ErrInvalidAssetRef
	}
	if in.DurationDays < 1 {
		return domain.Auction{}, domain.ErrInvalidDuration
	}
	if !in.FloorPrice.IsPositive() {
		return domain.Auction{}, domain.ErrInvalidFloorPrice
	}

	approved, err := s.custody.ApprovedFor(ctx, in.Asset, in.Seller)
	if err != nil {
		return domain.Auction{}, domain.ErrPaymentFailed
	}
	if !approved {
		return domain.Auction{}, domain.ErrNotApproved
	}

	now := s.clock.Now()
	auction := domain.Auction{
		Asset:         in.Asset,
		Seller:        in.Seller,
		CustodyOwner:  s.escrowPrincipal,
		EndTime:       now.Add(time.Duration(in.DurationDays) * 24 * time.Hour),
		FloorPrice:    in.FloorPrice,
		HighestBidder: domain.NoBidder,
		HighestBid:    decimal.Zero,
		CreatedAt:     now,
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		id, err := s.repo.CreateAuction(txCtx, auction)
		if err != nil {
			return err
		}
		auction.ID = id

		// Pulling the asset in while the insert is still uncommitted keeps
		// registration all-or-nothing: a failed custody call aborts the record.
		if err := s.custody.TransferIn(txCtx, in.Asset, in.Seller, s.escrowPrincipal); err != nil {
			return domain.ErrPaymentFailed
		}
		return nil
	})
	if err != nil {
		return domain.Auction{}, err
	}

	return auction, nil
}

// GetAuction returns the current record for one auction id.
func (s *ListingService) GetAuction(ctx context.Context, id int64) (domain.Auction, error) {
	if id <= 0 {
		return domain.Auction{}, domain.ErrInvalidID
	}
	return s.repo.GetAuction(ctx, id)
}
