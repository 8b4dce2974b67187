package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/anans7/auction-NFT/internal/app"
	"github.com/anans7/auction-NFT/internal/domain"
)

// Bidder is the minimal interface for bid admission.
type Bidder interface {
	Bid(ctx context.Context, in app.BidInput) (domain.Auction, error)
	IncreaseBid(ctx context.Context, in app.IncreaseBidInput) (domain.Auction, error)
}

func handlePlaceBid(svc Bidder, auctionID int64, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	bidder := principalFrom(r)
	if bidder == "" {
		writeError(w, http.StatusUnauthorized, codePrincipalRequired, domain.ErrPrincipalRequired.Error())
		return
	}

	var req bidRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	auction, err := svc.Bid(r.Context(), app.BidInput{
		AuctionID: auctionID,
		Bidder:    bidder,
		Amount:    req.Amount,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeBidResponse(w, auction)
}

func handleIncreaseBid(svc Bidder, auctionID int64, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	bidder := principalFrom(r)
	if bidder == "" {
		writeError(w, http.StatusUnauthorized, codePrincipalRequired, domain.ErrPrincipalRequired.Error())
		return
	}

	var req increaseBidRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	auction, err := svc.IncreaseBid(r.Context(), app.IncreaseBidInput{
		AuctionID:   auctionID,
		Bidder:      bidder,
		AddedAmount: req.AddedAmount,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeBidResponse(w, auction)
}

type bidRequest struct {
	// Amount is the bid value; the same funds are escrowed with the bid.
	Amount decimal.Decimal `json:"amount"`
}

type increaseBidRequest struct {
	AddedAmount decimal.Decimal `json:"added_amount"`
}

type bidResponse struct {
	AuctionID     int64           `json:"auction_id"`
	HighestBidder string          `json:"highest_bidder"`
	HighestBid    decimal.Decimal `json:"highest_bid"`
}

func writeBidResponse(w http.ResponseWriter, a domain.Auction) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(bidResponse{
		AuctionID:     a.ID,
		HighestBidder: a.HighestBidder,
		HighestBid:    a.HighestBid,
	})
}
