package usecase

import (
	"time"

	"github.com/iho/gowallet/internal/domain"
)

const (
	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction. This prevents long-running transactions from blocking
	// wallet rows.
	DefaultTransactionTimeout = 10 * time.Second

	// MinDepositAmount is the smallest deposit accepted, in minor units
	// (100.00 major units).
	MinDepositAmount = domain.Amount(100 * domain.MinorUnitScale)

	// MinTransferAmount is the smallest transfer accepted, in minor units.
	MinTransferAmount = domain.Amount(1)

	// ReferencePrefix distinguishes client-facing transaction references
	// from internal entry IDs.
	ReferencePrefix = "txn_"

	// Suffixes for the two legs of a transfer, sharing the reference root.
	debitReferenceSuffix  = "_d"
	creditReferenceSuffix = "_c"

	// maxWalletNumberAttempts bounds regeneration on wallet number
	// collisions. The 13-digit space makes collisions rare, not impossible.
	maxWalletNumberAttempts = 5

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
