package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// AuditRepository implements audit log persistence
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// CreateTx inserts a new audit log entry within a transaction
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	pgxTx := tx.(*Tx).PgxTx()

	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	var stateJSON []byte
	if log.State != nil {
		var err error
		stateJSON, err = json.Marshal(log.State)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_logs (
			id, owner_id, action, resource_type, resource_id,
			request_id, state, status, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := pgxTx.Exec(ctx, query,
		log.ID,
		log.OwnerID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		log.RequestID,
		stateJSON,
		log.Status,
		log.ErrorMessage,
		log.CreatedAt,
	)

	return err
}

// ListByResource retrieves all audit logs for a specific resource
func (r *AuditRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, owner_id, action, resource_type, resource_id,
		       request_id, state, status, error_message, created_at
		FROM audit_logs
		WHERE resource_type = $1 AND resource_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, resourceType, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var (
			log       domain.AuditLog
			stateJSON []byte
		)
		err := rows.Scan(
			&log.ID,
			&log.OwnerID,
			&log.Action,
			&log.ResourceType,
			&log.ResourceID,
			&log.RequestID,
			&stateJSON,
			&log.Status,
			&log.ErrorMessage,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if stateJSON != nil {
			_ = json.Unmarshal(stateJSON, &log.State)
		}

		logs = append(logs, &log)
	}

	return logs, rows.Err()
}
