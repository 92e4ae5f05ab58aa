package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/internal/usecase/mocks"
)

func TestReconciliationUseCase_CheckConsistency(t *testing.T) {
	ctx := context.Background()

	t.Run("balances equal posted entries", func(t *testing.T) {
		ledgerRepo := mocks.NewMockLedgerRepository()
		ledgerRepo.CheckConsistencyFunc = func(ctx context.Context) (domain.Amount, domain.Amount, error) {
			return domain.AmountFromMinor(750000), domain.AmountFromMinor(750000), nil
		}

		uc := usecase.NewReconciliationUseCase(ledgerRepo)

		consistent, err := uc.CheckConsistency(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !consistent {
			t.Error("expected a consistent ledger")
		}
	})

	t.Run("drift is reported", func(t *testing.T) {
		ledgerRepo := mocks.NewMockLedgerRepository()
		ledgerRepo.CheckConsistencyFunc = func(ctx context.Context) (domain.Amount, domain.Amount, error) {
			return domain.AmountFromMinor(750000), domain.AmountFromMinor(749900), nil
		}

		uc := usecase.NewReconciliationUseCase(ledgerRepo)

		consistent, err := uc.CheckConsistency(ctx)
		if !errors.Is(err, usecase.ErrInconsistentLedger) {
			t.Fatalf("expected ErrInconsistentLedger, got %v", err)
		}
		if consistent {
			t.Error("expected consistent=false")
		}
	})

	t.Run("storage errors propagate", func(t *testing.T) {
		storageErr := errors.New("connection reset")
		ledgerRepo := mocks.NewMockLedgerRepository()
		ledgerRepo.CheckConsistencyFunc = func(ctx context.Context) (domain.Amount, domain.Amount, error) {
			return 0, 0, storageErr
		}

		uc := usecase.NewReconciliationUseCase(ledgerRepo)

		_, err := uc.CheckConsistency(ctx)
		if !errors.Is(err, storageErr) {
			t.Fatalf("expected storage error, got %v", err)
		}
	})
}
