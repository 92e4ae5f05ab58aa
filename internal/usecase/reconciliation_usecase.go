package usecase

import (
	"context"
	"errors"
)

var (
	// ErrInconsistentLedger is returned when wallet balances and posted
	// entries no longer agree.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: balances do not equal posted entries")
)

// ReconciliationUseCase verifies ledger-wide invariants.
type ReconciliationUseCase struct {
	ledgerRepo LedgerRepository
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(ledgerRepo LedgerRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// CheckConsistency verifies that the sum of all wallet balances equals the
// sum of all successfully posted entry amounts. Money enters through
// confirmed deposits and moves through balanced transfer pairs, so the two
// totals must always agree.
func (uc *ReconciliationUseCase) CheckConsistency(ctx context.Context) (bool, error) {
	totalBalance, totalPosted, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return false, err
	}

	if totalBalance != totalPosted {
		return false, ErrInconsistentLedger
	}

	return true, nil
}
