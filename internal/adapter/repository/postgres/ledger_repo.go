package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowallet/internal/domain"
)

// LedgerRepository implements ledger-wide queries.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// CheckConsistency returns the sum of all wallet balances and the sum of all
// successfully posted entry amounts. The two totals are read in one statement
// so they come from the same snapshot.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (domain.Amount, domain.Amount, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(balance), 0) FROM wallets),
			(SELECT COALESCE(SUM(amount), 0) FROM entries WHERE status = 'success')
	`

	var totalBalance, totalPosted int64
	err := r.pool.QueryRow(ctx, query).Scan(&totalBalance, &totalPosted)
	if err != nil {
		return 0, 0, err
	}

	return domain.Amount(totalBalance), domain.Amount(totalPosted), nil
}
