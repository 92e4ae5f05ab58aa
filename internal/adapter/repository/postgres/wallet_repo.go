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

const pgErrUniqueViolation = "23505"

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// CreateTx inserts a new wallet within a transaction.
func (r *WalletRepository) CreateTx(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO wallets (id, owner_id, wallet_number, balance, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := pgxTx.Exec(ctx, query,
		wallet.ID,
		wallet.OwnerID,
		wallet.WalletNumber,
		int64(wallet.Balance),
		wallet.Currency,
		wallet.CreatedAt,
		wallet.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		switch pgErr.ConstraintName {
		case "wallets_owner_id_key":
			return domain.ErrDuplicateOwner
		case "wallets_wallet_number_key":
			return domain.ErrDuplicateWalletNumber
		}
	}

	return err
}

// GetByID retrieves a wallet by ID.
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	return r.getBy(ctx, "id", id)
}

// GetByOwner retrieves the wallet owned by the given owner.
func (r *WalletRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	return r.getBy(ctx, "owner_id", ownerID)
}

// GetByNumber retrieves a wallet by its public wallet number.
func (r *WalletRepository) GetByNumber(ctx context.Context, number string) (*domain.Wallet, error) {
	return r.getBy(ctx, "wallet_number", number)
}

func (r *WalletRepository) getBy(ctx context.Context, column, value string) (*domain.Wallet, error) {
	query := `
		SELECT id, owner_id, wallet_number, balance, currency, created_at, updated_at
		FROM wallets
		WHERE ` + column + ` = $1
	`

	var (
		wallet  domain.Wallet
		balance int64
	)
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&wallet.ID,
		&wallet.OwnerID,
		&wallet.WalletNumber,
		&balance,
		&wallet.Currency,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, err
	}

	wallet.Balance = domain.Amount(balance)

	return &wallet, nil
}

// ApplyDelta adjusts the wallet balance by a signed amount. The WHERE clause
// makes the update conditional: a debit that would drive the balance negative
// matches no rows and the wallet is left untouched.
func (r *WalletRepository) ApplyDelta(ctx context.Context, tx usecase.Transaction, walletID string, delta domain.Amount, updatedAt time.Time) (*domain.Wallet, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE wallets
		SET balance = balance + $2, updated_at = $3
		WHERE id = $1 AND balance + $2 >= 0
		RETURNING id, owner_id, wallet_number, balance, currency, created_at, updated_at
	`

	var (
		wallet  domain.Wallet
		balance int64
	)
	err := pgxTx.QueryRow(ctx, query, walletID, int64(delta), updatedAt).Scan(
		&wallet.ID,
		&wallet.OwnerID,
		&wallet.WalletNumber,
		&balance,
		&wallet.Currency,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyDeltaFailure(ctx, pgxTx, walletID)
		}

		return nil, err
	}

	wallet.Balance = domain.Amount(balance)

	return &wallet, nil
}

// classifyDeltaFailure distinguishes a missing wallet from an insufficient
// balance after a conditional update matched no rows.
func (r *WalletRepository) classifyDeltaFailure(ctx context.Context, pgxTx pgx.Tx, walletID string) error {
	var exists bool
	err := pgxTx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wallets WHERE id = $1)`, walletID).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		return domain.ErrWalletNotFound
	}

	return domain.ErrInsufficientBalance
}
