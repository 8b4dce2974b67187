package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// Ledger helpers shared by the repositories. All of them run inside the
// caller's transaction, under the auction row lock.

type rowQuerier func(ctx context.Context, sql string, args ...any) pgx.Row
type execer func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

func escrowBalance(ctx context.Context, queryRow rowQuerier, auctionID int64, principal string) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(amount), 0)
FROM escrow_entries
WHERE auction_id = $1 AND principal = $2`

	var balance decimal.Decimal
	if err := queryRow(ctx, query, auctionID, principal).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("escrow balance: %w", err)
	}
	return balance, nil
}

func addEscrow(ctx context.Context, exec execer, auctionID int64, principal string, amount decimal.Decimal) error {
	const stmt = `
INSERT INTO escrow_entries (auction_id, principal, amount, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (auction_id, principal)
DO UPDATE SET amount = escrow_entries.amount + EXCLUDED.amount, updated_at = NOW()`

	if _, err := exec(ctx, stmt, auctionID, principal, amount); err != nil {
		return fmt.Errorf("add escrow: %w", err)
	}
	return nil
}

func zeroEscrow(ctx context.Context, exec execer, auctionID int64, principal string) error {
	const stmt = `
UPDATE escrow_entries SET amount = 0, updated_at = NOW()
WHERE auction_id = $1 AND principal = $2`

	if _, err := exec(ctx, stmt, auctionID, principal); err != nil {
		return fmt.Errorf("zero escrow: %w", err)
	}
	return nil
}
