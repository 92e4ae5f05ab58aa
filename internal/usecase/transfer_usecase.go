package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

// TransferUseCase moves funds between two wallets as one atomic unit: both
// balance deltas and both journal entries commit together or not at all.
type TransferUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	entryRepo  EntryRepository
	outboxRepo OutboxRepository
	auditRepo  AuditRepository
	idGen      IDGenerator
	retrier    Retrier
	cache      Cache
	metrics    *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	metrics *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
		outboxRepo: outboxRepo,
		auditRepo:  auditRepo,
		idGen:      idGen,
		retrier:    retrier,
		cache:      cache,
		metrics:    metrics,
	}
}

// TransferResult is the outcome of a posted transfer.
type TransferResult struct {
	Reference   string
	DebitEntry  *domain.Entry
	CreditEntry *domain.Entry
}

// Transfer debits the sender's wallet and credits the wallet identified by
// the recipient's wallet number. Deltas are applied in ascending wallet-ID
// order so that opposite-direction transfers between the same pair of
// wallets cannot deadlock.
func (uc *TransferUseCase) Transfer(ctx context.Context, senderOwnerID, recipientNumber string, amount domain.Amount) (*TransferResult, error) {
	// All validation happens before any mutation.
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	if amount.LessThan(MinTransferAmount) {
		return nil, fmt.Errorf("%w: minimum transfer is %s", domain.ErrBelowMinimum, MinTransferAmount.MajorString())
	}

	if err := domain.ValidateWalletNumber(recipientNumber); err != nil {
		return nil, err
	}

	sender, err := uc.walletRepo.GetByOwner(ctx, senderOwnerID)
	if err != nil {
		return nil, err
	}

	recipient, err := uc.walletRepo.GetByNumber(ctx, recipientNumber)
	if err != nil {
		return nil, domain.ErrRecipientNotFound
	}

	if sender.ID == recipient.ID {
		return nil, domain.ErrSelfTransfer
	}

	// Early check against the snapshot; the conditional UPDATE inside the
	// transaction remains authoritative.
	if err := sender.ValidateDebit(amount); err != nil {
		if uc.metrics != nil {
			uc.metrics.TransferErrors.WithLabelValues(errorLabel(err)).Inc()
		}

		return nil, err
	}

	var result *TransferResult

	post := func() error {
		var err error

		result, err = uc.post(ctx, sender, recipient, amount)

		return err
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, post)
	} else {
		err = post()
	}

	if err != nil {
		if uc.metrics != nil {
			uc.metrics.TransferErrors.WithLabelValues(errorLabel(err)).Inc()
		}

		return nil, err
	}

	invalidateBalance(ctx, uc.cache, sender.OwnerID)
	invalidateBalance(ctx, uc.cache, recipient.OwnerID)

	if uc.metrics != nil {
		uc.metrics.TransfersPosted.Inc()
		uc.metrics.TransferAmount.Observe(amount.Decimal().InexactFloat64())
	}

	return result, nil
}

func (uc *TransferUseCase) post(ctx context.Context, sender, recipient *domain.Wallet, amount domain.Amount) (*TransferResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()

	// Fixed lock order: row locks are taken by wallet identity, never by
	// sender/recipient role.
	deltas := []struct {
		walletID string
		delta    domain.Amount
	}{
		{walletID: sender.ID, delta: amount.Neg()},
		{walletID: recipient.ID, delta: amount},
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].walletID < deltas[j].walletID })

	for _, d := range deltas {
		if _, err := uc.walletRepo.ApplyDelta(txCtx, tx, d.walletID, d.delta, now); err != nil {
			return nil, err
		}
	}

	root := ReferencePrefix + uc.idGen.Generate()
	recipientID := recipient.ID
	senderID := sender.ID

	debit := &domain.Entry{
		ID:                   uc.idGen.Generate(),
		Reference:            root + debitReferenceSuffix,
		WalletID:             sender.ID,
		Kind:                 domain.EntryKindTransferDebit,
		Amount:               amount.Neg(),
		Status:               domain.EntryStatusSuccess,
		CounterpartyWalletID: &recipientID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.entryRepo.Create(txCtx, tx, debit); err != nil {
		return nil, err
	}

	credit := &domain.Entry{
		ID:                   uc.idGen.Generate(),
		Reference:            root + creditReferenceSuffix,
		WalletID:             recipient.ID,
		Kind:                 domain.EntryKindTransferCredit,
		Amount:               amount,
		Status:               domain.EntryStatusSuccess,
		CounterpartyWalletID: &senderID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.entryRepo.Create(txCtx, tx, credit); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   sender.ID,
		AggregateType: domain.AggregateTypeWallet,
		EventType:     domain.EventTypeTransferPosted,
		Payload: map[string]any{
			"reference":           root,
			"sender_wallet_id":    sender.ID,
			"recipient_wallet_id": recipient.ID,
			"amount":              amount.MajorString(),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		actor := sender.OwnerID
		if id, ok := domain.IdentityFromContext(ctx); ok {
			actor = id.OwnerID
		}

		log := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			OwnerID:      actor,
			Action:       string(domain.AuditActionTransferCreate),
			ResourceType: "entry",
			ResourceID:   debit.ID,
			State:        domain.MarshalState(debit),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		}
		if err := uc.auditRepo.CreateTx(txCtx, tx, log); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &TransferResult{
		Reference:   root,
		DebitEntry:  debit,
		CreditEntry: credit,
	}, nil
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrDuplicateReference):
		return "duplicate_reference"
	default:
		return "storage"
	}
}
