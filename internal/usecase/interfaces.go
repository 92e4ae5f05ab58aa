package usecase

import (
	"context"
	"time"

	"github.com/iho/gowallet/internal/domain"
)

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	CreateTx(ctx context.Context, tx Transaction, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id string) (*domain.Wallet, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error)
	GetByNumber(ctx context.Context, number string) (*domain.Wallet, error)
	// ApplyDelta atomically adjusts the wallet balance by a signed amount.
	// The update is conditional at the storage layer: a delta that would
	// drive the balance negative fails with ErrInsufficientBalance and
	// leaves the row untouched.
	ApplyDelta(ctx context.Context, tx Transaction, walletID string, delta domain.Amount, updatedAt time.Time) (*domain.Wallet, error)
}

// EntryRepository defines data access for journal entries.
type EntryRepository interface {
	// Create appends a new entry. A reference that already exists fails
	// with ErrDuplicateReference; this is the idempotency backstop.
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByReference(ctx context.Context, reference string) (*domain.Entry, error)
	GetByReferenceForUpdate(ctx context.Context, tx Transaction, reference string) (*domain.Entry, error)
	// UpdateStatus conditionally moves an entry from one status to another.
	// It fails with ErrInvalidTransition when the current status is not
	// the expected one, which is what makes confirmation replay safe.
	UpdateStatus(ctx context.Context, tx Transaction, id string, from, to domain.EntryStatus, updatedAt time.Time) error
	ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Entry, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	CreateTx(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// LedgerRepository defines ledger-wide queries.
type LedgerRepository interface {
	// CheckConsistency returns the total of all wallet balances and the
	// total of all successfully posted entry amounts.
	CheckConsistency(ctx context.Context) (totalBalance, totalPosted domain.Amount, err error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// PaymentHandle is the provider-issued token for a single payment attempt.
type PaymentHandle struct {
	AuthorizationURL  string
	ProviderReference string
}

// PaymentProvider is the outbound contract of the payment gateway. The
// adapter owns the conversion between Amount and the provider's minor-unit
// convention; the engine never sees provider units.
type PaymentProvider interface {
	RequestPaymentHandle(ctx context.Context, reference string, amount domain.Amount, payerEmail string) (*PaymentHandle, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// WalletNumberGenerator draws fixed-width numeric wallet numbers uniformly
// from the number space. Uniqueness is re-checked against the store.
type WalletNumberGenerator interface {
	Generate() (string, error)
}

// Retrier re-runs an operation on transient storage conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
