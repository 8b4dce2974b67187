package domain

import "errors"

var (
	ErrAuctionNotFound   = errors.New("auction not found")
	ErrInvalidID         = errors.New("invalid id")
	ErrInvalidAssetRef   = errors.New("asset reference required")
	ErrInvalidDuration   = errors.New("duration must be at least one day")
	ErrInvalidFloorPrice = errors.New("floor price must be positive")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrPrincipalRequired = errors.New("principal required")

	ErrNotSeller       = errors.New("caller is not the seller")
	ErrSellerCannotBid = errors.New("seller cannot bid on own auction")
	ErrNotApproved     = errors.New("custody transfer not pre-approved")

	ErrAuctionClosed        = errors.New("auction closed")
	ErrAlreadyHighestBidder = errors.New("caller is already the highest bidder")
	ErrHasEscrowBalance     = errors.New("caller holds an escrow balance, use increase")
	ErrBidTooLow            = errors.New("bid too low")
	ErrNotEligible          = errors.New("caller not eligible")
	ErrWrongFee             = errors.New("attached fee does not match cancellation fee")
	ErrAlreadyFinalized     = errors.New("auction already finalized")

	ErrPaymentFailed = errors.New("payment or custody transfer failed")
)
