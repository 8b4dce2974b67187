package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anans7/auction-NFT/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidID          = "invalid_id"
	codeInvalidAssetRef    = "invalid_asset_ref"
	codeInvalidDuration    = "invalid_duration"
	codeInvalidFloorPrice  = "invalid_floor_price"
	codeInvalidAmount      = "invalid_amount"
	codePrincipalRequired  = "principal_required"
	codeNotSeller          = "not_seller"
	codeSellerCannotBid    = "seller_cannot_bid"
	codeNotApproved        = "not_approved"
	codeAuctionNotFound    = "auction_not_found"
	codeAuctionClosed      = "auction_closed"
	codeAlreadyHighest     = "already_highest_bidder"
	codeHasEscrowBalance   = "has_escrow_balance"
	codeBidTooLow          = "bid_too_low"
	codeNotEligible        = "not_eligible"
	codeWrongFee           = "wrong_fee"
	codeAlreadyFinalized   = "already_finalized"
	codePaymentFailed      = "payment_failed"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps domain sentinels onto HTTP statuses and error codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPrincipalRequired):
		writeError(w, http.StatusUnauthorized, codePrincipalRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrInvalidAssetRef):
		writeError(w, http.StatusBadRequest, codeInvalidAssetRef, err.Error())
	case errors.Is(err, domain.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, codeInvalidDuration, err.Error())
	case errors.Is(err, domain.ErrInvalidFloorPrice):
		writeError(w, http.StatusBadRequest, codeInvalidFloorPrice, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, codeInvalidAmount, err.Error())
	case errors.Is(err, domain.ErrNotSeller):
		writeError(w, http.StatusForbidden, codeNotSeller, err.Error())
	case errors.Is(err, domain.ErrSellerCannotBid):
		writeError(w, http.StatusForbidden, codeSellerCannotBid, err.Error())
	case errors.Is(err, domain.ErrNotApproved):
		writeError(w, http.StatusForbidden, codeNotApproved, err.Error())
	case errors.Is(err, domain.ErrAuctionNotFound):
		writeError(w, http.StatusNotFound, codeAuctionNotFound, err.Error())
	case errors.Is(err, domain.ErrAuctionClosed):
		writeError(w, http.StatusConflict, codeAuctionClosed, err.Error())
	case errors.Is(err, domain.ErrAlreadyHighestBidder):
		writeError(w, http.StatusConflict, codeAlreadyHighest, err.Error())
	case errors.Is(err, domain.ErrHasEscrowBalance):
		writeError(w, http.StatusConflict, codeHasEscrowBalance, err.Error())
	case errors.Is(err, domain.ErrBidTooLow):
		writeError(w, http.StatusConflict, codeBidTooLow, err.Error())
	case errors.Is(err, domain.ErrNotEligible):
		writeError(w, http.StatusConflict, codeNotEligible, err.Error())
	case errors.Is(err, domain.ErrWrongFee):
		writeError(w, http.StatusBadRequest, codeWrongFee, err.Error())
	case errors.Is(err, domain.ErrAlreadyFinalized):
		writeError(w, http.StatusConflict, codeAlreadyFinalized, err.Error())
	case errors.Is(err, domain.ErrPaymentFailed):
		writeError(w, http.StatusBadGateway, codePaymentFailed, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
