package domain

import "time"

// EntryKind classifies a journal entry.
type EntryKind string

const (
	EntryKindDeposit        EntryKind = "deposit"
	EntryKindTransferDebit  EntryKind = "transfer_debit"
	EntryKindTransferCredit EntryKind = "transfer_credit"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	EntryStatusPending EntryStatus = "pending"
	EntryStatusSuccess EntryStatus = "success"
	EntryStatusFailed  EntryStatus = "failed"
)

// Terminal reports whether the status may never change again.
func (s EntryStatus) Terminal() bool {
	return s == EntryStatusSuccess || s == EntryStatusFailed
}

// Entry is an immutable journal record of a balance-affecting event. The
// amount is signed: positive credits the wallet, negative debits it.
type Entry struct {
	ID                   string
	Reference            string
	WalletID             string
	Kind                 EntryKind
	Amount               Amount
	Status               EntryStatus
	CounterpartyWalletID *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
