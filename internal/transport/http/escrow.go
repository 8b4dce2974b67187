package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/anans7/auction-NFT/internal/domain"
)

// EscrowOperator is the minimal interface for refund queries and withdrawals.
type EscrowOperator interface {
	WithdrawEligibility(ctx context.Context, auctionID int64, principal string) (bool, error)
	Withdraw(ctx context.Context, auctionID int64, caller string) (bool, error)
}

func handleWithdraw(svc EscrowOperator, auctionID int64, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	caller := principalFrom(r)
	if caller == "" {
		writeError(w, http.StatusUnauthorized, codePrincipalRequired, domain.ErrPrincipalRequired.Error())
		return
	}

	withdrawn, err := svc.Withdraw(r.Context(), auctionID, caller)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(withdrawResponse{Withdrawn: withdrawn})
}

func handleEligibility(svc EscrowOperator, auctionID int64, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	// Read-only and callable for any principal, so the subject comes from the
	// query rather than the caller identity.
	principal := r.URL.Query().Get("principal")
	if principal == "" {
		writeError(w, http.StatusBadRequest, codePrincipalRequired, domain.ErrPrincipalRequired.Error())
		return
	}

	eligible, err := svc.WithdrawEligibility(r.Context(), auctionID, principal)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(eligibilityResponse{Eligible: eligible})
}

type withdrawResponse struct {
	Withdrawn bool `json:"withdrawn"`
}

type eligibilityResponse struct {
	Eligible bool `json:"eligible"`
}
