package domain

import "errors"

var (
	// Validation errors
	ErrInvalidAmount = errors.New("amount must be a non-negative value with at most two decimal places")
	ErrBelowMinimum  = errors.New("amount is below the minimum for this operation")

	// Wallet errors
	ErrWalletNotFound        = errors.New("wallet not found")
	ErrRecipientNotFound     = errors.New("recipient wallet not found")
	ErrDuplicateOwner        = errors.New("owner already has a wallet")
	ErrDuplicateWalletNumber = errors.New("wallet number already taken")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrSelfTransfer          = errors.New("cannot transfer to own wallet")

	// Journal errors
	ErrEntryNotFound      = errors.New("transaction entry not found")
	ErrDuplicateReference = errors.New("transaction reference already exists")
	ErrInvalidTransition  = errors.New("entry status transition not allowed")

	// Provider errors
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrInvalidSignature    = errors.New("webhook signature mismatch")
)
