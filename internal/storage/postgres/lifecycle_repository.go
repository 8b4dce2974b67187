package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/anans7/auction-NFT/internal/domain"
)

// LifecycleRepository backs cancellation and finalization.
type LifecycleRepository struct {
	pool *pgxpool.Pool
}

func NewLifecycleRepository(pool *pgxpool.Pool) *LifecycleRepository {
	return &LifecycleRepository{pool: pool}
}

func (r *LifecycleRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *LifecycleRepository) GetAuctionForUpdate(ctx context.Context, id int64) (domain.Auction, error) {
	return scanAuction(r.queryRow(ctx, auctionForUpdateQuery, id))
}

func (r *LifecycleRepository) AddEscrow(ctx context.Context, auctionID int64, principal string, amount decimal.Decimal) error {
	return addEscrow(ctx, r.exec, auctionID, principal, amount)
}

// UpdateAuction writes every mutable field of the record; the id, asset and
// creation time are immutable.
func (r *LifecycleRepository) UpdateAuction(ctx context.Context, a domain.Auction) error {
	const stmt = `
UPDATE auctions
SET seller = $2, custody_owner = $3, end_time = $4, highest_bidder = $5,
	highest_bid = $6, sold = $7, ended = $8
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		a.ID,
		a.Seller,
		a.CustodyOwner,
		a.EndTime,
		a.HighestBidder,
		a.HighestBid,
		a.Sold,
		a.Ended,
	)
	if err != nil {
		return fmt.Errorf("update auction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAuctionNotFound
	}
	return nil
}

func (r *LifecycleRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *LifecycleRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
