package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

const balanceCacheTTL = 5 * time.Second

func balanceCacheKey(ownerID string) string {
	return "balance:" + ownerID
}

// invalidateBalance drops a cached balance snapshot after a committed
// mutation so the next read sees the new balance. Best effort: the snapshot
// TTL bounds staleness if the delete fails.
func invalidateBalance(ctx context.Context, cache Cache, ownerID string) {
	if cache == nil {
		return
	}

	_ = cache.Delete(ctx, balanceCacheKey(ownerID))
}

// WalletUseCase handles wallet provisioning and balance reads.
type WalletUseCase struct {
	walletRepo WalletRepository
	numberGen  WalletNumberGenerator
	idGen      IDGenerator
	cache      Cache
	metrics    *metrics.Metrics
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(
	walletRepo WalletRepository,
	numberGen WalletNumberGenerator,
	idGen IDGenerator,
	cache Cache,
	metrics *metrics.Metrics,
) *WalletUseCase {
	return &WalletUseCase{
		walletRepo: walletRepo,
		numberGen:  numberGen,
		idGen:      idGen,
		cache:      cache,
		metrics:    metrics,
	}
}

// CreateForOwnerTx provisions a wallet with balance zero inside the caller's
// transaction, so owner and wallet records commit together. Wallet numbers
// are drawn uniformly and re-checked against the store; generation retries on
// collision.
func (uc *WalletUseCase) CreateForOwnerTx(ctx context.Context, tx Transaction, ownerID string) (*domain.Wallet, error) {
	number, err := uc.pickNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:           uc.idGen.Generate(),
		OwnerID:      ownerID,
		WalletNumber: number,
		Balance:      domain.AmountFromMinor(0),
		Currency:     "NGN",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.walletRepo.CreateTx(ctx, tx, wallet); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WalletsCreated.Inc()
	}

	return wallet, nil
}

func (uc *WalletUseCase) pickNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxWalletNumberAttempts; attempt++ {
		number, err := uc.numberGen.Generate()
		if err != nil {
			return "", err
		}

		_, err = uc.walletRepo.GetByNumber(ctx, number)
		if errors.Is(err, domain.ErrWalletNotFound) {
			return number, nil
		}

		if err != nil {
			return "", err
		}
		// Number taken, draw again.
	}

	return "", domain.ErrDuplicateWalletNumber
}

// BalanceSnapshot is the read model for a wallet balance.
type BalanceSnapshot struct {
	WalletNumber string        `json:"wallet_number"`
	Balance      domain.Amount `json:"balance_minor"`
	Currency     string        `json:"currency"`
}

// GetBalance returns the owner's wallet number and balance. Snapshots are
// cached briefly; the store remains the source of truth for every mutation.
func (uc *WalletUseCase) GetBalance(ctx context.Context, ownerID string) (*BalanceSnapshot, error) {
	cacheKey := balanceCacheKey(ownerID)

	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, cacheKey); err == nil && raw != nil {
			var snap BalanceSnapshot
			if err := json.Unmarshal(raw, &snap); err == nil {
				return &snap, nil
			}
		}
	}

	wallet, err := uc.walletRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	snap := &BalanceSnapshot{
		WalletNumber: wallet.WalletNumber,
		Balance:      wallet.Balance,
		Currency:     wallet.Currency,
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(snap); err == nil {
			_ = uc.cache.Set(ctx, cacheKey, raw, balanceCacheTTL)
		}
	}

	return snap, nil
}

// GetByNumber resolves a wallet by its public number.
func (uc *WalletUseCase) GetByNumber(ctx context.Context, number string) (*domain.Wallet, error) {
	if err := domain.ValidateWalletNumber(number); err != nil {
		return nil, err
	}

	return uc.walletRepo.GetByNumber(ctx, number)
}
