package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anans7/auction-NFT/internal/app"
	"github.com/anans7/auction-NFT/internal/domain"
)

// AuctionReader serves single-auction reads.
type AuctionReader interface {
	GetAuction(ctx context.Context, id int64) (domain.Auction, error)
}

// ItemCreator registers new listings.
type ItemCreator interface {
	CreateItem(ctx context.Context, in app.CreateItemInput) (domain.Auction, error)
}

// HandleCreateAuction returns the handler for POST /auctions.
func HandleCreateAuction(svc ItemCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		seller := principalFrom(r)
		if seller == "" {
			writeError(w, http.StatusUnauthorized, codePrincipalRequired, domain.ErrPrincipalRequired.Error())
			return
		}

		var req createAuctionRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		auction, err := svc.CreateItem(r.Context(), app.CreateItemInput{
			Seller: seller,
			Asset: domain.AssetRef{
				Contract: req.AssetContract,
				TokenID:  req.AssetTokenID,
			},
			DurationDays: req.DurationDays,
			FloorPrice:   req.FloorPrice,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(auctionResponseFrom(auction))
	}
}

type createAuctionRequest struct {
	AssetContract string          `json:"asset_contract"`
	AssetTokenID  string          `json:"asset_token_id"`
	DurationDays  int             `json:"duration_days"`
	FloorPrice    decimal.Decimal `json:"floor_price"`
}

type auctionResponse struct {
	ID            int64           `json:"id"`
	AssetContract string          `json:"asset_contract"`
	AssetTokenID  string          `json:"asset_token_id"`
	Seller        string          `json:"seller"`
	CustodyOwner  string          `json:"custody_owner"`
	EndTime       time.Time       `json:"end_time"`
	FloorPrice    decimal.Decimal `json:"floor_price"`
	HighestBidder string          `json:"highest_bidder"`
	HighestBid    decimal.Decimal `json:"highest_bid"`
	Sold          bool            `json:"sold"`
	Ended         bool            `json:"ended"`
}

func auctionResponseFrom(a domain.Auction) auctionResponse {
	return auctionResponse{
		ID:            a.ID,
		AssetContract: a.Asset.Contract,
		AssetTokenID:  a.Asset.TokenID,
		Seller:        a.Seller,
		CustodyOwner:  a.CustodyOwner,
		EndTime:       a.EndTime,
		FloorPrice:    a.FloorPrice,
		HighestBidder: a.HighestBidder,
		HighestBid:    a.HighestBid,
		Sold:          a.Sold,
		Ended:         a.Ended,
	}
}

// AuctionHandlers groups the services reachable under /auctions/{id}.
type AuctionHandlers struct {
	Reader    AuctionReader
	Bidder    Bidder
	Escrow    EscrowOperator
	Lifecycle LifecycleOperator
}

// HandleAuctionSubtree dispatches /auctions/{id} and its sub-operations.
func HandleAuctionSubtree(h AuctionHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, rest, ok := parseAuctionPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		switch rest {
		case "":
			handleGetAuction(h.Reader, id, w, r)
		case "bids":
			handlePlaceBid(h.Bidder, id, w, r)
		case "bids/increase":
			handleIncreaseBid(h.Bidder, id, w, r)
		case "withdraw":
			handleWithdraw(h.Escrow, id, w, r)
		case "eligibility":
			handleEligibility(h.Escrow, id, w, r)
		case "cancel":
			handleCancel(h.Lifecycle, id, w, r)
		case "end":
			handleEnd(h.Lifecycle, id, w, r)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func handleGetAuction(svc AuctionReader, id int64, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	auction, err := svc.GetAuction(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(auctionResponseFrom(auction))
}

// parseAuctionPath splits /auctions/{id}[/rest...] into the id and the
// remaining sub-path.
func parseAuctionPath(path string) (int64, string, bool) {
	trimmed := strings.TrimPrefix(strings.Trim(path, "/"), "auctions")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return 0, "", false
	}

	idPart, rest, _ := strings.Cut(trimmed, "/")
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, rest, true
}
