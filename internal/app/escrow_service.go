package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/anans7/auction-NFT/internal/domain"
)

type EscrowRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetAuction(ctx context.Context, id int64) (domain.Auction, error)
	GetAuctionForUpdate(ctx context.Context, id int64) (domain.Auction, error)
	EscrowBalance(ctx context.Context, auctionID int64, principal string) (decimal.Decimal, error)
	ZeroEscrow(ctx context.Context, auctionID int64, principal string) error
}

// EscrowService answers eligibility queries and pays out refundable balances.
type EscrowService struct {
	repo EscrowRepository
	rail PaymentRail
}

func NewEscrowService(repo EscrowRepository, rail PaymentRail) *EscrowService {
	return &EscrowService{
		repo: repo,
		rail: rail,
	}
}

// WithdrawEligibility reports whether the principal could withdraw right now:
// they must not hold the highest bid and must have a positive escrow balance.
func (s *EscrowService) WithdrawEligibility(ctx context.Context, auctionID int64, principal string) (bool, error) {
	if principal == "" {
		return false, domain.ErrPrincipalRequired
	}

	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return false, err
	}
	if principal == auction.HighestBidder {
		return false, nil
	}

	balance, err := s.repo.EscrowBalance(ctx, auctionID, principal)
	if err != nil {
		return false, err
	}
	return balance.IsPositive(), nil
}

// Withdraw pays the caller's escrow balance back through the payment rail and
// zeroes the ledger entry, atomically: a rail failure aborts the transaction
// and the balance stays claimable. A zero balance is a no-op returning false.
func (s *EscrowService) Withdraw(ctx context.Context, auctionID int64, caller string) (bool, error) {
	if caller == "" {
		return false, domain.ErrPrincipalRequired
	}

	withdrawn := false
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		auction, err := s.repo.GetAuctionForUpdate(txCtx, auctionID)
		if err != nil {
			return err
		}
		if caller == auction.HighestBidder {
			return domain.ErrNotEligible
		}

		balance, err := s.repo.EscrowBalance(txCtx, auctionID, caller)
		if err != nil {
			return err
		}
		if !balance.IsPositive() {
			return nil
		}

		if err := s.repo.ZeroEscrow(txCtx, auctionID, caller); err != nil {
			return err
		}
		if err := s.rail.Pay(txCtx, caller, balance); err != nil {
			return domain.ErrPaymentFailed
		}

		withdrawn = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return withdrawn, nil
}
