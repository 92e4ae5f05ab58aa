package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/internal/usecase/mocks"
)

type memCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{store: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store[key], nil
}

func (c *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func TestWalletUseCase_CreateForOwnerTx(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions a zero-balance wallet", func(t *testing.T) {
		walletRepo := mocks.NewMockWalletRepository()
		uc := usecase.NewWalletUseCase(walletRepo, mocks.NewMockWalletNumberGenerator(), mocks.NewMockIDGenerator(), nil, nil)

		wallet, err := uc.CreateForOwnerTx(ctx, &mocks.MockTransaction{}, "owner-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if wallet.Balance.Minor() != 0 {
			t.Errorf("expected zero balance, got %d", wallet.Balance.Minor())
		}
		if err := domain.ValidateWalletNumber(wallet.WalletNumber); err != nil {
			t.Errorf("invalid wallet number %q: %v", wallet.WalletNumber, err)
		}

		stored, err := walletRepo.GetByOwner(ctx, "owner-1")
		if err != nil {
			t.Fatalf("wallet not persisted: %v", err)
		}
		if stored.ID != wallet.ID {
			t.Errorf("expected stored wallet %s, got %s", wallet.ID, stored.ID)
		}
	})

	t.Run("retries on a number collision", func(t *testing.T) {
		walletRepo := mocks.NewMockWalletRepository()
		walletRepo.Seed(&domain.Wallet{
			ID:           "wallet-taken",
			OwnerID:      "owner-0",
			WalletNumber: "0000000000001",
		})

		uc := usecase.NewWalletUseCase(walletRepo, mocks.NewMockWalletNumberGenerator(), mocks.NewMockIDGenerator(), nil, nil)

		wallet, err := uc.CreateForOwnerTx(ctx, &mocks.MockTransaction{}, "owner-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Sequential generator: the first draw collides, the second is free.
		if wallet.WalletNumber != "0000000000002" {
			t.Errorf("expected the second drawn number, got %q", wallet.WalletNumber)
		}
	})

	t.Run("gives up after exhausting attempts", func(t *testing.T) {
		walletRepo := mocks.NewMockWalletRepository()
		walletRepo.Seed(&domain.Wallet{
			ID:           "wallet-taken",
			OwnerID:      "owner-0",
			WalletNumber: "0000000000007",
		})

		numberGen := mocks.NewMockWalletNumberGenerator()
		numberGen.GenerateFunc = func() (string, error) {
			return "0000000000007", nil
		}

		uc := usecase.NewWalletUseCase(walletRepo, numberGen, mocks.NewMockIDGenerator(), nil, nil)

		_, err := uc.CreateForOwnerTx(ctx, &mocks.MockTransaction{}, "owner-1")
		if !errors.Is(err, domain.ErrDuplicateWalletNumber) {
			t.Fatalf("expected ErrDuplicateWalletNumber, got %v", err)
		}
	})

	t.Run("one wallet per owner", func(t *testing.T) {
		walletRepo := mocks.NewMockWalletRepository()
		uc := usecase.NewWalletUseCase(walletRepo, mocks.NewMockWalletNumberGenerator(), mocks.NewMockIDGenerator(), nil, nil)

		if _, err := uc.CreateForOwnerTx(ctx, &mocks.MockTransaction{}, "owner-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := uc.CreateForOwnerTx(ctx, &mocks.MockTransaction{}, "owner-1")
		if !errors.Is(err, domain.ErrDuplicateOwner) {
			t.Fatalf("expected ErrDuplicateOwner, got %v", err)
		}
	})
}

func TestWalletUseCase_GetBalance(t *testing.T) {
	ctx := context.Background()

	seed := func() *mocks.MockWalletRepository {
		walletRepo := mocks.NewMockWalletRepository()
		walletRepo.Seed(&domain.Wallet{
			ID:           "wallet-1",
			OwnerID:      "owner-1",
			WalletNumber: "0000000000001",
			Balance:      domain.AmountFromMinor(250000),
			Currency:     "NGN",
		})
		return walletRepo
	}

	t.Run("returns the stored balance without a cache", func(t *testing.T) {
		uc := usecase.NewWalletUseCase(seed(), nil, nil, nil, nil)

		snap, err := uc.GetBalance(ctx, "owner-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snap.Balance.Minor() != 250000 {
			t.Errorf("expected balance 250000, got %d", snap.Balance.Minor())
		}
		if snap.WalletNumber != "0000000000001" {
			t.Errorf("unexpected wallet number %q", snap.WalletNumber)
		}
	})

	t.Run("serves repeated reads from the cache", func(t *testing.T) {
		walletRepo := seed()
		cache := newMemCache()
		uc := usecase.NewWalletUseCase(walletRepo, nil, nil, cache, nil)

		if _, err := uc.GetBalance(ctx, "owner-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		calls := 0
		walletRepo.GetByOwnerFunc = func(ctx context.Context, ownerID string) (*domain.Wallet, error) {
			calls++
			return nil, domain.ErrWalletNotFound
		}

		snap, err := uc.GetBalance(ctx, "owner-1")
		if err != nil {
			t.Fatalf("expected a cache hit, got error: %v", err)
		}
		if calls != 0 {
			t.Errorf("expected no repository reads, got %d", calls)
		}
		if snap.Balance.Minor() != 250000 {
			t.Errorf("expected cached balance 250000, got %d", snap.Balance.Minor())
		}
	})

	t.Run("unknown owner", func(t *testing.T) {
		uc := usecase.NewWalletUseCase(seed(), nil, nil, nil, nil)

		_, err := uc.GetBalance(ctx, "owner-unknown")
		if !errors.Is(err, domain.ErrWalletNotFound) {
			t.Fatalf("expected ErrWalletNotFound, got %v", err)
		}
	})
}

func TestWalletUseCase_GetByNumber(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	walletRepo.Seed(&domain.Wallet{
		ID:           "wallet-1",
		OwnerID:      "owner-1",
		WalletNumber: "0000000000001",
	})

	uc := usecase.NewWalletUseCase(walletRepo, nil, nil, nil, nil)

	t.Run("resolves an existing number", func(t *testing.T) {
		wallet, err := uc.GetByNumber(context.Background(), "0000000000001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wallet.ID != "wallet-1" {
			t.Errorf("expected wallet-1, got %s", wallet.ID)
		}
	})

	t.Run("rejects a malformed number before hitting the store", func(t *testing.T) {
		_, err := uc.GetByNumber(context.Background(), "not-a-number")
		if !errors.Is(err, domain.ErrInvalidWalletNumber) {
			t.Fatalf("expected ErrInvalidWalletNumber, got %v", err)
		}
	})
}
