package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

// DepositUseCase drives the external-deposit lifecycle: intent creation
// against the payment provider and idempotent confirmation of the provider's
// asynchronous outcome.
type DepositUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	entryRepo  EntryRepository
	userRepo   UserRepository
	outboxRepo OutboxRepository
	auditRepo  AuditRepository
	provider   PaymentProvider
	idGen      IDGenerator
	cache      Cache
	metrics    *metrics.Metrics
}

// NewDepositUseCase creates a new DepositUseCase.
func NewDepositUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	entryRepo EntryRepository,
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	provider PaymentProvider,
	idGen IDGenerator,
	cache Cache,
	metrics *metrics.Metrics,
) *DepositUseCase {
	return &DepositUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		auditRepo:  auditRepo,
		provider:   provider,
		idGen:      idGen,
		cache:      cache,
		metrics:    metrics,
	}
}

// DepositIntent is the outcome of a successful deposit initiation. No balance
// change has happened yet; the wallet is credited only on confirmation.
type DepositIntent struct {
	Reference         string
	AuthorizationURL  string
	ProviderReference string
	Amount            domain.Amount
}

// InitiateDeposit validates the amount, obtains a payment handle from the
// provider and records a pending journal entry. The provider call happens
// before anything is written: a provider failure leaves no trace.
func (uc *DepositUseCase) InitiateDeposit(ctx context.Context, ownerID string, amount domain.Amount) (*DepositIntent, error) {
	if amount.LessThan(MinDepositAmount) {
		return nil, fmt.Errorf("%w: minimum deposit is %s", domain.ErrBelowMinimum, MinDepositAmount.MajorString())
	}

	wallet, err := uc.walletRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	owner, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	reference := ReferencePrefix + uc.idGen.Generate()

	handle, err := uc.provider.RequestPaymentHandle(ctx, reference, amount, owner.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderUnavailable, err)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	entry := &domain.Entry{
		ID:        uc.idGen.Generate(),
		Reference: reference,
		WalletID:  wallet.ID,
		Kind:      domain.EntryKindDeposit,
		Amount:    amount,
		Status:    domain.EntryStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   entry.ID,
		AggregateType: domain.AggregateTypeEntry,
		EventType:     domain.EventTypeDepositInitiated,
		Payload: map[string]any{
			"reference": reference,
			"wallet_id": wallet.ID,
			"amount":    amount.MajorString(),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := uc.audit(txCtx, tx, ownerID, domain.AuditActionDepositInitiate, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsInitiated.Inc()
	}

	return &DepositIntent{
		Reference:         reference,
		AuthorizationURL:  handle.AuthorizationURL,
		ProviderReference: handle.ProviderReference,
		Amount:            amount,
	}, nil
}

// ConfirmDeposit applies a provider outcome to a pending deposit. It is safe
// to call any number of times for the same reference: once the entry is
// terminal, further calls report credited=false and change nothing. The
// status flip and the balance credit commit together or not at all.
func (uc *DepositUseCase) ConfirmDeposit(ctx context.Context, reference string, succeeded bool) (credited bool, err error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	entry, err := uc.entryRepo.GetByReferenceForUpdate(txCtx, tx, reference)
	if err != nil {
		return false, err
	}

	if entry.Status.Terminal() {
		return false, nil
	}

	now := time.Now().UTC()

	if !succeeded {
		if err := uc.entryRepo.UpdateStatus(txCtx, tx, entry.ID, domain.EntryStatusPending, domain.EntryStatusFailed, now); err != nil {
			return false, err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   entry.ID,
			AggregateType: domain.AggregateTypeEntry,
			EventType:     domain.EventTypeDepositFailed,
			Payload: map[string]any{
				"reference": reference,
				"wallet_id": entry.WalletID,
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return false, err
		}

		if err := tx.Commit(txCtx); err != nil {
			return false, err
		}

		if uc.metrics != nil {
			uc.metrics.DepositsFailed.Inc()
		}

		return false, nil
	}

	if err := uc.entryRepo.UpdateStatus(txCtx, tx, entry.ID, domain.EntryStatusPending, domain.EntryStatusSuccess, now); err != nil {
		return false, err
	}

	wallet, err := uc.walletRepo.ApplyDelta(txCtx, tx, entry.WalletID, entry.Amount, now)
	if err != nil {
		return false, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   entry.ID,
		AggregateType: domain.AggregateTypeEntry,
		EventType:     domain.EventTypeDepositConfirmed,
		Payload: map[string]any{
			"reference": reference,
			"wallet_id": entry.WalletID,
			"amount":    entry.Amount.MajorString(),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return false, err
	}

	if err := uc.audit(txCtx, tx, "provider", domain.AuditActionDepositConfirm, entry); err != nil {
		return false, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return false, err
	}

	invalidateBalance(ctx, uc.cache, wallet.OwnerID)

	if uc.metrics != nil {
		uc.metrics.DepositsConfirmed.Inc()
		uc.metrics.DepositAmount.Observe(entry.Amount.Decimal().InexactFloat64())
	}

	return true, nil
}

func (uc *DepositUseCase) audit(ctx context.Context, tx Transaction, actor string, action domain.AuditAction, entry *domain.Entry) error {
	if uc.auditRepo == nil {
		return nil
	}

	if id, ok := domain.IdentityFromContext(ctx); ok {
		actor = id.OwnerID
	}

	return uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		OwnerID:      actor,
		Action:       string(action),
		ResourceType: "entry",
		ResourceID:   entry.ID,
		State:        domain.MarshalState(entry),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
