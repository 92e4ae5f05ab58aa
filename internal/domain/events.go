package domain

import "time"

// Event types
const (
	EventTypeDepositInitiated = "deposit.initiated"
	EventTypeDepositConfirmed = "deposit.confirmed"
	EventTypeDepositFailed    = "deposit.failed"
	EventTypeTransferPosted   = "transfer.posted"
	EventTypeWalletCreated    = "wallet.created"
)

// Aggregate types
const (
	AggregateTypeWallet = "wallet"
	AggregateTypeEntry  = "entry"
)

// OutboxEvent represents an event to be published. It is written in the same
// storage transaction as the mutation it describes.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// DepositConfirmedEvent payload
type DepositConfirmedEvent struct {
	Reference string `json:"reference"`
	WalletID  string `json:"wallet_id"`
	Amount    string `json:"amount"`
}

// TransferPostedEvent payload
type TransferPostedEvent struct {
	Reference         string `json:"reference"`
	SenderWalletID    string `json:"sender_wallet_id"`
	RecipientWalletID string `json:"recipient_wallet_id"`
	Amount            string `json:"amount"`
}

// WalletCreatedEvent payload
type WalletCreatedEvent struct {
	WalletID     string `json:"wallet_id"`
	OwnerID      string `json:"owner_id"`
	WalletNumber string `json:"wallet_number"`
}
