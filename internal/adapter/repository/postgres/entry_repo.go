package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

const entryColumns = `id, reference, wallet_id, kind, amount, status, counterparty_wallet_id, created_at, updated_at`

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create appends a new journal entry within a transaction. A duplicate
// reference violates the unique index and maps to ErrDuplicateReference.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := pgxTx.Exec(ctx, query,
		entry.ID,
		entry.Reference,
		entry.WalletID,
		string(entry.Kind),
		int64(entry.Amount),
		string(entry.Status),
		entry.CounterpartyWalletID,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrDuplicateReference
	}

	return err
}

// GetByReference retrieves an entry by its reference.
func (r *EntryRepository) GetByReference(ctx context.Context, reference string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE reference = $1`

	return scanEntry(r.pool.QueryRow(ctx, query, reference))
}

// GetByReferenceForUpdate retrieves an entry by reference with a FOR UPDATE
// lock, serializing concurrent confirmations of the same reference.
func (r *EntryRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, reference string) (*domain.Entry, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + entryColumns + ` FROM entries WHERE reference = $1 FOR UPDATE`

	return scanEntry(pgxTx.QueryRow(ctx, query, reference))
}

// UpdateStatus conditionally moves an entry from one status to another. The
// transition fails with ErrInvalidTransition when the stored status is not
// the expected one.
func (r *EntryRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, from, to domain.EntryStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE entries
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`

	tag, err := pgxTx.Exec(ctx, query, id, string(from), string(to), updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}

	return nil
}

// ListByWallet retrieves entries for a wallet, newest first.
func (r *EntryRepository) ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, walletID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry  domain.Entry
		kind   string
		amount int64
		status string
	)
	err := row.Scan(
		&entry.ID,
		&entry.Reference,
		&entry.WalletID,
		&kind,
		&amount,
		&status,
		&entry.CounterpartyWalletID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	entry.Kind = domain.EntryKind(kind)
	entry.Amount = domain.Amount(amount)
	entry.Status = domain.EntryStatus(status)

	return &entry, nil
}
