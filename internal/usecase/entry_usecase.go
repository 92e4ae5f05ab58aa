package usecase

import (
	"context"
	"errors"

	"github.com/iho/gowallet/internal/domain"
)

// EntryUseCase handles journal reads.
type EntryUseCase struct {
	entryRepo  EntryRepository
	walletRepo WalletRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository, walletRepo WalletRepository) *EntryUseCase {
	return &EntryUseCase{
		entryRepo:  entryRepo,
		walletRepo: walletRepo,
	}
}

// ListByOwnerInput represents input for listing an owner's transactions.
type ListByOwnerInput struct {
	OwnerID string
	Limit   int
	Offset  int
}

// ListByOwner lists journal entries for the owner's wallet, newest first.
func (uc *EntryUseCase) ListByOwner(ctx context.Context, input ListByOwnerInput) ([]*domain.Entry, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	if input.Offset < 0 {
		input.Offset = 0
	}

	wallet, err := uc.walletRepo.GetByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	return uc.entryRepo.ListByWallet(ctx, wallet.ID, input.Limit, input.Offset)
}

// GetByReference looks up a single entry by its client-facing reference.
// Owners can only read entries posted to their own wallet; callers without a
// wallet (auditors) read the whole journal. A foreign entry reports not-found
// rather than revealing that the reference exists.
func (uc *EntryUseCase) GetByReference(ctx context.Context, ownerID, reference string) (*domain.Entry, error) {
	entry, err := uc.entryRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	wallet, err := uc.walletRepo.GetByOwner(ctx, ownerID)
	if errors.Is(err, domain.ErrWalletNotFound) {
		return entry, nil
	}
	if err != nil {
		return nil, err
	}

	if entry.WalletID != wallet.ID {
		return nil, domain.ErrEntryNotFound
	}

	return entry, nil
}
