package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/anans7/auction-NFT/internal/domain"
)

// EscrowRepository backs eligibility reads and withdrawals.
type EscrowRepository struct {
	pool *pgxpool.Pool
}

func NewEscrowRepository(pool *pgxpool.Pool) *EscrowRepository {
	return &EscrowRepository{pool: pool}
}

func (r *EscrowRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *EscrowRepository) GetAuction(ctx context.Context, id int64) (domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1`
	return scanAuction(r.queryRow(ctx, query, id))
}

func (r *EscrowRepository) GetAuctionForUpdate(ctx context.Context, id int64) (domain.Auction, error) {
	return scanAuction(r.queryRow(ctx, auctionForUpdateQuery, id))
}

func (r *EscrowRepository) EscrowBalance(ctx context.Context, auctionID int64, principal string) (decimal.Decimal, error) {
	return escrowBalance(ctx, r.queryRow, auctionID, principal)
}

func (r *EscrowRepository) ZeroEscrow(ctx context.Context, auctionID int64, principal string) error {
	return zeroEscrow(ctx, r.exec, auctionID, principal)
}

func (r *EscrowRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *EscrowRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
