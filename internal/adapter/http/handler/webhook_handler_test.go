package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/gowallet/internal/adapter/provider"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/internal/usecase/mocks"
)

const webhookSecret = "whsec_test"

type webhookFixture struct {
	handler    *WebhookHandler
	verifier   *provider.WebhookVerifier
	walletRepo *mocks.MockWalletRepository
	uc         *usecase.DepositUseCase
}

func newWebhookFixture() *webhookFixture {
	walletRepo := mocks.NewMockWalletRepository()
	walletRepo.Seed(&domain.Wallet{
		ID:           "wallet-1",
		OwnerID:      "owner-1",
		WalletNumber: "0000000000001",
		Balance:      domain.AmountFromMinor(0),
		Currency:     "NGN",
	})

	userRepo := mocks.NewMockUserRepository()
	userRepo.CreateTx(context.Background(), nil, &domain.User{
		ID:     "owner-1",
		Email:  "owner@example.com",
		Name:   "Owner One",
		Role:   domain.RoleOwner,
		Active: true,
	})

	uc := usecase.NewDepositUseCase(
		mocks.NewMockTransactionManager(),
		walletRepo,
		mocks.NewMockEntryRepository(),
		userRepo,
		mocks.NewMockOutboxRepository(),
		nil,
		mocks.NewMockPaymentProvider(),
		mocks.NewMockIDGenerator(),
		nil,
		nil,
	)

	verifier := provider.NewWebhookVerifier(webhookSecret)

	return &webhookFixture{
		handler:    NewWebhookHandler(verifier, uc, nil, zerolog.Nop()),
		verifier:   verifier,
		walletRepo: walletRepo,
		uc:         uc,
	}
}

func (f *webhookFixture) signedRequest(t *testing.T, event string, reference string) *http.Request {
	t.Helper()

	payload := map[string]any{
		"event": event,
		"data": map[string]any{
			"reference": reference,
			"amount":    50000,
			"status":    "success",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/webhooks/provider", bytes.NewReader(body))
	req.Header.Set(provider.SignatureHeader, f.verifier.Sign(body))
	return req
}

func TestWebhookHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("charge success credits the wallet", func(t *testing.T) {
		f := newWebhookFixture()

		intent, err := f.uc.InitiateDeposit(ctx, "owner-1", domain.AmountFromMinor(50000))
		if err != nil {
			t.Fatalf("initiate failed: %v", err)
		}

		rec := httptest.NewRecorder()
		f.handler.Handle(rec, f.signedRequest(t, provider.WebhookEventChargeSuccess, intent.Reference))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		wallet, _ := f.walletRepo.GetByID(ctx, "wallet-1")
		if wallet.Balance.Minor() != 50000 {
			t.Errorf("expected balance 50000, got %d", wallet.Balance.Minor())
		}
	})

	t.Run("replayed notification is acknowledged without a second credit", func(t *testing.T) {
		f := newWebhookFixture()

		intent, err := f.uc.InitiateDeposit(ctx, "owner-1", domain.AmountFromMinor(50000))
		if err != nil {
			t.Fatalf("initiate failed: %v", err)
		}

		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			f.handler.Handle(rec, f.signedRequest(t, provider.WebhookEventChargeSuccess, intent.Reference))
			if rec.Code != http.StatusOK {
				t.Fatalf("attempt %d: expected 200, got %d", i, rec.Code)
			}
		}

		wallet, _ := f.walletRepo.GetByID(ctx, "wallet-1")
		if wallet.Balance.Minor() != 50000 {
			t.Errorf("expected a single credit of 50000, got %d", wallet.Balance.Minor())
		}
	})

	t.Run("rejects a bad signature", func(t *testing.T) {
		f := newWebhookFixture()

		req := f.signedRequest(t, provider.WebhookEventChargeSuccess, "txn_whatever")
		req.Header.Set(provider.SignatureHeader, "deadbeef")

		rec := httptest.NewRecorder()
		f.handler.Handle(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("unknown reference is acknowledged", func(t *testing.T) {
		f := newWebhookFixture()

		rec := httptest.NewRecorder()
		f.handler.Handle(rec, f.signedRequest(t, provider.WebhookEventChargeSuccess, "txn_never_issued"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for unknown reference, got %d", rec.Code)
		}
	})

	t.Run("informational events never settle a pending deposit", func(t *testing.T) {
		f := newWebhookFixture()

		intent, err := f.uc.InitiateDeposit(ctx, "owner-1", domain.AmountFromMinor(50000))
		if err != nil {
			t.Fatalf("initiate failed: %v", err)
		}

		// A dispute notification carries the charge reference but is not
		// a charge outcome. It must be acknowledged and leave the entry
		// pending.
		rec := httptest.NewRecorder()
		f.handler.Handle(rec, f.signedRequest(t, "charge.dispute.create", intent.Reference))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for informational event, got %d", rec.Code)
		}

		wallet, _ := f.walletRepo.GetByID(ctx, "wallet-1")
		if wallet.Balance.Minor() != 0 {
			t.Fatalf("informational event changed the balance: %d", wallet.Balance.Minor())
		}

		// The processor's real outcome still settles the deposit.
		rec = httptest.NewRecorder()
		f.handler.Handle(rec, f.signedRequest(t, provider.WebhookEventChargeSuccess, intent.Reference))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		wallet, _ = f.walletRepo.GetByID(ctx, "wallet-1")
		if wallet.Balance.Minor() != 50000 {
			t.Errorf("expected the deposit credited after charge.success, got %d", wallet.Balance.Minor())
		}
	})

	t.Run("charge failed marks the deposit failed", func(t *testing.T) {
		f := newWebhookFixture()

		intent, err := f.uc.InitiateDeposit(ctx, "owner-1", domain.AmountFromMinor(50000))
		if err != nil {
			t.Fatalf("initiate failed: %v", err)
		}

		rec := httptest.NewRecorder()
		f.handler.Handle(rec, f.signedRequest(t, provider.WebhookEventChargeFailed, intent.Reference))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		wallet, _ := f.walletRepo.GetByID(ctx, "wallet-1")
		if wallet.Balance.Minor() != 0 {
			t.Errorf("expected untouched balance, got %d", wallet.Balance.Minor())
		}
	})
}
