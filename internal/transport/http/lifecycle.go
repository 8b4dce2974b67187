package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/anans7/auction-NFT/internal/domain"
)

// LifecycleOperator is the minimal interface for cancellation and finalization.
type LifecycleOperator interface {
	Cancel(ctx context.Context, auctionID int64, caller string, fee decimal.Decimal) (domain.Auction, error)
	End(ctx context.Context, auctionID int64, caller string) (domain.Auction, error)
}

func handleCancel(svc LifecycleOperator, auctionID int64, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	caller := principalFrom(r)
	if caller == "" {
		writeError(w, http.StatusUnauthorized, codePrincipalRequired, domain.ErrPrincipalRequired.Error())
		return
	}

	var req cancelRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	auction, err := svc.Cancel(r.Context(), auctionID, caller, req.Fee)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(auctionResponseFrom(auction))
}

func handleEnd(svc LifecycleOperator, auctionID int64, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	caller := principalFrom(r)
	if caller == "" {
		writeError(w, http.StatusUnauthorized, codePrincipalRequired, domain.ErrPrincipalRequired.Error())
		return
	}

	auction, err := svc.End(r.Context(), auctionID, caller)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(auctionResponseFrom(auction))
}

type cancelRequest struct {
	// Fee must match the configured cancellation fee exactly.
	Fee decimal.Decimal `json:"fee"`
}
