package integration

import (
	"context"
	"testing"
	"time"

	"github.com/iho/gowallet/internal/adapter/repository/postgres"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/tests/testutil"
)

func TestOutboxLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	walletRepo := postgres.NewWalletRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()

	transferUC := usecase.NewTransferUseCase(txManager, walletRepo, entryRepo, outboxRepo, nil, idGen, nil, nil, nil)

	userA := testDB.CreateTestUser(ctx, "outbox-a@example.com", "s3cretpass")
	userB := testDB.CreateTestUser(ctx, "outbox-b@example.com", "s3cretpass")
	testDB.CreateTestWallet(ctx, userA.ID, 100000)
	walletB := testDB.CreateTestWallet(ctx, userB.ID, 0)

	if _, err := transferUC.Transfer(ctx, userA.ID, walletB.WalletNumber, domain.AmountFromMinor(5000)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	events, err := outboxRepo.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to fetch unpublished events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one unpublished event, got %d", len(events))
	}
	if events[0].EventType != domain.EventTypeTransferPosted {
		t.Errorf("expected transfer.posted, got %s", events[0].EventType)
	}

	now := time.Now().UTC()
	if err := outboxRepo.MarkPublished(ctx, events[0].ID, now); err != nil {
		t.Fatalf("failed to mark published: %v", err)
	}

	events, err = outboxRepo.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to fetch unpublished events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no unpublished events, got %d", len(events))
	}

	if err := outboxRepo.DeletePublished(ctx, now.Add(time.Second)); err != nil {
		t.Fatalf("failed to delete published events: %v", err)
	}
}
