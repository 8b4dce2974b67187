package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anans7/auction-NFT/internal/domain"
)

const auctionColumns = `id, asset_contract, asset_token_id, seller, custody_owner,
end_time, floor_price, highest_bidder, highest_bid, sold, ended, created_at`

// AuctionRepository backs the listing flow: record creation and reads.
type AuctionRepository struct {
	pool *pgxpool.Pool
}

func NewAuctionRepository(pool *pgxpool.Pool) *AuctionRepository {
	return &AuctionRepository{pool: pool}
}

func (r *AuctionRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *AuctionRepository) CreateAuction(ctx context.Context, a domain.Auction) (int64, error) {
	const stmt = `
INSERT INTO auctions (asset_contract, asset_token_id, seller, custody_owner,
	end_time, floor_price, highest_bidder, highest_bid, sold, ended, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

	var id int64
	err := r.queryRow(ctx, stmt,
		a.Asset.Contract,
		a.Asset.TokenID,
		a.Seller,
		a.CustodyOwner,
		a.EndTime,
		a.FloorPrice,
		a.HighestBidder,
		a.HighestBid,
		a.Sold,
		a.Ended,
		a.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create auction: %w", err)
	}
	return id, nil
}

func (r *AuctionRepository) GetAuction(ctx context.Context, id int64) (domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1`
	return scanAuction(r.queryRow(ctx, query, id))
}

func scanAuction(row pgx.Row) (domain.Auction, error) {
	var a domain.Auction
	err := row.Scan(
		&a.ID,
		&a.Asset.Contract,
		&a.Asset.TokenID,
		&a.Seller,
		&a.CustodyOwner,
		&a.EndTime,
		&a.FloorPrice,
		&a.HighestBidder,
		&a.HighestBid,
		&a.Sold,
		&a.Ended,
		&a.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Auction{}, domain.ErrAuctionNotFound
		}
		return domain.Auction{}, fmt.Errorf("scan auction: %w", err)
	}
	return a, nil
}

func (r *AuctionRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *AuctionRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
