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

// Locking the auction row serializes every operation touching one auction id;
// operations on other ids run concurrently.
const auctionForUpdateQuery = `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1 FOR UPDATE`

// BidRepository backs bid admission and ranking, including the escrow writes
// that happen as a side effect of displacing the highest bid.
type BidRepository struct {
	pool *pgxpool.Pool
}

func NewBidRepository(pool *pgxpool.Pool) *BidRepository {
	return &BidRepository{pool: pool}
}

func (r *BidRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *BidRepository) GetAuctionForUpdate(ctx context.Context, id int64) (domain.Auction, error) {
	return scanAuction(r.queryRow(ctx, auctionForUpdateQuery, id))
}

func (r *BidRepository) EscrowBalance(ctx context.Context, auctionID int64, principal string) (decimal.Decimal, error) {
	return escrowBalance(ctx, r.queryRow, auctionID, principal)
}

func (r *BidRepository) AddEscrow(ctx context.Context, auctionID int64, principal string, amount decimal.Decimal) error {
	return addEscrow(ctx, r.exec, auctionID, principal, amount)
}

func (r *BidRepository) ZeroEscrow(ctx context.Context, auctionID int64, principal string) error {
	return zeroEscrow(ctx, r.exec, auctionID, principal)
}

func (r *BidRepository) SetHighestBid(ctx context.Context, auctionID int64, bidder string, amount decimal.Decimal) error {
	const stmt = `UPDATE auctions SET highest_bidder = $2, highest_bid = $3 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, auctionID, bidder, amount)
	if err != nil {
		return fmt.Errorf("set highest bid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAuctionNotFound
	}
	return nil
}

func (r *BidRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BidRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
