package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/anans7/auction-NFT/internal/domain"
)

// fakeRepo implements every repository interface over in-memory maps. WithTx
// snapshots state and restores it on error, mirroring the transactional
// rollback the Postgres layer provides.
type fakeRepo struct {
	auctions map[int64]domain.Auction
	escrow   map[string]decimal.Decimal
	nextID   int64
}

func newFakeRepo(auctions ...domain.Auction) *fakeRepo {
	r := &fakeRepo{
		auctions: make(map[int64]domain.Auction),
		escrow:   make(map[string]decimal.Decimal),
	}
	for _, a := range auctions {
		r.auctions[a.ID] = a
		if a.ID > r.nextID {
			r.nextID = a.ID
		}
	}
	return r
}

func escrowKey(auctionID int64, principal string) string {
	return fmt.Sprintf("%d|%s", auctionID, principal)
}

func (f *fakeRepo) setEscrow(auctionID int64, principal string, amount decimal.Decimal) {
	f.escrow[escrowKey(auctionID, principal)] = amount
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	auctionsBackup := make(map[int64]domain.Auction, len(f.auctions))
	for k, v := range f.auctions {
		auctionsBackup[k] = v
	}
	escrowBackup := make(map[string]decimal.Decimal, len(f.escrow))
	for k, v := range f.escrow {
		escrowBackup[k] = v
	}
	idBackup := f.nextID

	if err := fn(ctx); err != nil {
		f.auctions = auctionsBackup
		f.escrow = escrowBackup
		f.nextID = idBackup
		return err
	}
	return nil
}

func (f *fakeRepo) CreateAuction(ctx context.Context, a domain.Auction) (int64, error) {
	f.nextID++
	a.ID = f.nextID
	f.auctions[a.ID] = a
	return a.ID, nil
}

func (f *fakeRepo) GetAuction(ctx context.Context, id int64) (domain.Auction, error) {
	a, ok := f.auctions[id]
	if !ok {
		return domain.Auction{}, domain.ErrAuctionNotFound
	}
	return a, nil
}

func (f *fakeRepo) GetAuctionForUpdate(ctx context.Context, id int64) (domain.Auction, error) {
	return f.GetAuction(ctx, id)
}

func (f *fakeRepo) EscrowBalance(ctx context.Context, auctionID int64, principal string) (decimal.Decimal, error) {
	balance, ok := f.escrow[escrowKey(auctionID, principal)]
	if !ok {
		return decimal.Zero, nil
	}
	return balance, nil
}

func (f *fakeRepo) AddEscrow(ctx context.Context, auctionID int64, principal string, amount decimal.Decimal) error {
	key := escrowKey(auctionID, principal)
	f.escrow[key] = f.escrow[key].Add(amount)
	return nil
}

func (f *fakeRepo) ZeroEscrow(ctx context.Context, auctionID int64, principal string) error {
	f.escrow[escrowKey(auctionID, principal)] = decimal.Zero
	return nil
}

func (f *fakeRepo) SetHighestBid(ctx context.Context, auctionID int64, bidder string, amount decimal.Decimal) error {
	a, ok := f.auctions[auctionID]
	if !ok {
		return domain.ErrAuctionNotFound
	}
	a.HighestBidder = bidder
	a.HighestBid = amount
	f.auctions[auctionID] = a
	return nil
}

func (f *fakeRepo) UpdateAuction(ctx context.Context, a domain.Auction) error {
	if _, ok := f.auctions[a.ID]; !ok {
		return domain.ErrAuctionNotFound
	}
	f.auctions[a.ID] = a
	return nil
}

type custodyCall struct {
	asset domain.AssetRef
	from  string
	to    string
}

type fakeCustody struct {
	approved       bool
	transferInErr  error
	transferOutErr error
	ins            []custodyCall
	outs           []custodyCall
}

func (f *fakeCustody) ApprovedFor(ctx context.Context, asset domain.AssetRef, owner string) (bool, error) {
	return f.approved, nil
}

func (f *fakeCustody) TransferIn(ctx context.Context, asset domain.AssetRef, from, to string) error {
	if f.transferInErr != nil {
		return f.transferInErr
	}
	f.ins = append(f.ins, custodyCall{asset: asset, from: from, to: to})
	return nil
}

func (f *fakeCustody) TransferOut(ctx context.Context, asset domain.AssetRef, from, to string) error {
	if f.transferOutErr != nil {
		return f.transferOutErr
	}
	f.outs = append(f.outs, custodyCall{asset: asset, from: from, to: to})
	return nil
}

type payment struct {
	to     string
	amount decimal.Decimal
}

type fakeRail struct {
	err      error
	payments []payment
}

func (f *fakeRail) Pay(ctx context.Context, to string, amount decimal.Decimal) error {
	if f.err != nil {
		return f.err
	}
	f.payments = append(f.payments, payment{to: to, amount: amount})
	return nil
}

type notification struct {
	auctionID int64
	principal string
	amount    decimal.Decimal
}

type fakeNotifier struct {
	raised []notification
	ended  []notification
}

func (f *fakeNotifier) BidRaised(ctx context.Context, auctionID int64, principal string, amount decimal.Decimal) {
	f.raised = append(f.raised, notification{auctionID: auctionID, principal: principal, amount: amount})
}

func (f *fakeNotifier) AuctionEnded(ctx context.Context, auctionID int64, winner string, amount decimal.Decimal) {
	f.ended = append(f.ended, notification{auctionID: auctionID, principal: winner, amount: amount})
}
