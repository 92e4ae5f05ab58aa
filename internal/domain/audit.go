package domain

import (
	"encoding/json"
	"time"
)

// AuditLog represents an audit trail entry for compliance and debugging.
type AuditLog struct {
	ID           string
	OwnerID      string // who performed the action
	Action       string // what action (deposit.initiate, transfer.create, ...)
	ResourceType string // type of resource (wallet, entry)
	ResourceID   string
	RequestID    string
	State        JSON // resulting state of the resource
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data.
type JSON map[string]any

// AuditAction represents different types of auditable actions.
type AuditAction string

const (
	AuditActionDepositInitiate AuditAction = "deposit.initiate"
	AuditActionDepositConfirm  AuditAction = "deposit.confirm"
	AuditActionTransferCreate  AuditAction = "transfer.create"
	AuditActionWalletCreate    AuditAction = "wallet.create"
	AuditActionUserRegister    AuditAction = "user.register"
	AuditActionUserLogin       AuditAction = "user.login"
)

// AuditStatus represents the status of an audited action.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging.
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var out JSON
	if err := json.Unmarshal(data, &out); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return out
}
