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

func testAuction(now time.Time) domain.Auction {
	return domain.Auction{
		Asset:         domain.AssetRef{Contract: "0xabc", TokenID: "42"},
		Seller:        "alice",
		CustodyOwner:  "auction-escrow",
		EndTime:       now.Add(72 * time.Hour),
		FloorPrice:    decimal.NewFromInt(10),
		HighestBidder: domain.NoBidder,
		HighestBid:    decimal.Zero,
		CreatedAt:     now,
	}
}

func TestAuctionRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewAuctionRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("CreateAuction assigns increasing ids", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC().Truncate(time.Microsecond)

		first, err := repo.CreateAuction(ctx, testAuction(now))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		second, err := repo.CreateAuction(ctx, testAuction(now))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if second <= first {
			t.Fatalf("expected ids to increase, got %d then %d", first, second)
		}
	})

	t.Run("GetAuction round-trips every field", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC().Truncate(time.Microsecond)

		want := testAuction(now)
		id, err := repo.CreateAuction(ctx, want)
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		got, err := repo.GetAuction(ctx, id)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.ID != id || got.Asset != want.Asset || got.Seller != want.Seller || got.CustodyOwner != want.CustodyOwner {
			t.Fatalf("unexpected auction: %+v", got)
		}
		if !got.EndTime.Equal(want.EndTime) || !got.FloorPrice.Equal(want.FloorPrice) {
			t.Fatalf("unexpected end time or floor: %v / %s", got.EndTime, got.FloorPrice)
		}
		if got.HighestBidder != domain.NoBidder || !got.HighestBid.IsZero() || got.Sold || got.Ended {
			t.Fatalf("expected fresh auction state, got %+v", got)
		}
	})

	t.Run("GetAuction returns ErrAuctionNotFound", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if _, err := repo.GetAuction(ctx, 999); !errors.Is(err, domain.ErrAuctionNotFound) {
			t.Fatalf("expected ErrAuctionNotFound, got %v", err)
		}
	})

	t.Run("WithTx rolls back on error", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC().Truncate(time.Microsecond)

		boom := errors.New("boom")
		var id int64
		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			var txErr error
			id, txErr = repo.CreateAuction(txCtx, testAuction(now))
			if txErr != nil {
				t.Fatalf("create in tx: %v", txErr)
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		if _, err := repo.GetAuction(ctx, id); !errors.Is(err, domain.ErrAuctionNotFound) {
			t.Fatalf("expected insert rolled back, got %v", err)
		}
	})
}
