package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anans7/auction-NFT/internal/domain"
	"github.com/anans7/auction-NFT/internal/testutil"
)

func TestLifecycleRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewLifecycleRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("UpdateAuction persists every mutable field", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC().Truncate(time.Microsecond)

		id := testutil.InsertAuction(t, ctx, pool, testAuction(now))

		updated := testAuction(now)
		updated.ID = id
		updated.Seller = "bob"
		updated.CustodyOwner = "bob"
		updated.EndTime = time.Unix(0, 0).UTC()
		updated.HighestBidder = domain.NoBidder
		updated.HighestBid = decimal.Zero
		updated.Sold = true
		updated.Ended = true

		if err := repo.UpdateAuction(ctx, updated); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, err := NewAuctionRepository(pool).GetAuction(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Seller != "bob" || got.CustodyOwner != "bob" || !got.Sold || !got.Ended {
			t.Fatalf("unexpected auction after update: %+v", got)
		}
		if !got.EndTime.Equal(time.Unix(0, 0).UTC()) {
			t.Fatalf("expected zeroed end time, got %v", got.EndTime)
		}
	})

	t.Run("UpdateAuction returns ErrAuctionNotFound", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC().Truncate(time.Microsecond)

		missing := testAuction(now)
		missing.ID = 999
		if err := repo.UpdateAuction(ctx, missing); !errors.Is(err, domain.ErrAuctionNotFound) {
			t.Fatalf("expected ErrAuctionNotFound, got %v", err)
		}
	})

	t.Run("WithTx rolls back escrow credit and update together", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC().Truncate(time.Microsecond)

		withBid := testAuction(now)
		withBid.HighestBidder = "bob"
		withBid.HighestBid = decimal.NewFromInt(15)
		id := testutil.InsertAuction(t, ctx, pool, withBid)

		boom := errors.New("boom")
		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			auction, err := repo.GetAuctionForUpdate(txCtx, id)
			if err != nil {
				t.Fatalf("lock: %v", err)
			}
			if err := repo.AddEscrow(txCtx, id, auction.HighestBidder, auction.HighestBid); err != nil {
				t.Fatalf("credit: %v", err)
			}
			auction.Sold = true
			if err := repo.UpdateAuction(txCtx, auction); err != nil {
				t.Fatalf("update: %v", err)
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		got, err := NewAuctionRepository(pool).GetAuction(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Sold {
			t.Fatalf("expected update rolled back")
		}
		if bal := testutil.EscrowAmount(t, ctx, pool, id, "bob"); !bal.IsZero() {
			t.Fatalf("expected escrow credit rolled back, got %s", bal)
		}
	})
}
