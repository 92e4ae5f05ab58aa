package dto

import (
	"time"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// UserResponse represents an owner in API responses.
type UserResponse struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

// WalletResponse represents a wallet in API responses. Amounts are reported
// both as a major-unit decimal string and in minor units.
type WalletResponse struct {
	WalletNumber string    `json:"wallet_number"`
	Balance      string    `json:"balance"`
	BalanceMinor int64     `json:"balance_minor"`
	Currency     string    `json:"currency"`
	CreatedAt    time.Time `json:"created_at"`
}

// WalletFromDomain converts a domain wallet to a response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		WalletNumber: w.WalletNumber,
		Balance:      w.Balance.MajorString(),
		BalanceMinor: w.Balance.Minor(),
		Currency:     w.Currency,
		CreatedAt:    w.CreatedAt,
	}
}

// RegisterResponse represents a successful registration.
type RegisterResponse struct {
	User   *UserResponse   `json:"user"`
	Wallet *WalletResponse `json:"wallet"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// BalanceResponse represents a wallet balance snapshot.
type BalanceResponse struct {
	WalletNumber string `json:"wallet_number"`
	Balance      string `json:"balance"`
	BalanceMinor int64  `json:"balance_minor"`
	Currency     string `json:"currency"`
}

// BalanceFromSnapshot converts a balance snapshot to a response.
func BalanceFromSnapshot(s *usecase.BalanceSnapshot) *BalanceResponse {
	return &BalanceResponse{
		WalletNumber: s.WalletNumber,
		Balance:      s.Balance.MajorString(),
		BalanceMinor: s.Balance.Minor(),
		Currency:     s.Currency,
	}
}

// DepositIntentResponse represents an initiated deposit.
type DepositIntentResponse struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	Amount           string `json:"amount"`
	AmountMinor      int64  `json:"amount_minor"`
}

// DepositIntentFromUseCase converts a deposit intent to a response.
func DepositIntentFromUseCase(i *usecase.DepositIntent) *DepositIntentResponse {
	return &DepositIntentResponse{
		Reference:        i.Reference,
		AuthorizationURL: i.AuthorizationURL,
		Amount:           i.Amount.MajorString(),
		AmountMinor:      i.Amount.Minor(),
	}
}

// EntryResponse represents a journal entry in API responses.
type EntryResponse struct {
	Reference            string    `json:"reference"`
	Kind                 string    `json:"kind"`
	Amount               string    `json:"amount"`
	AmountMinor          int64     `json:"amount_minor"`
	Status               string    `json:"status"`
	CounterpartyWalletID *string   `json:"counterparty_wallet_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		Reference:            e.Reference,
		Kind:                 string(e.Kind),
		Amount:               e.Amount.MajorString(),
		AmountMinor:          e.Amount.Minor(),
		Status:               string(e.Status),
		CounterpartyWalletID: e.CounterpartyWalletID,
		CreatedAt:            e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransferResponse represents a posted transfer.
type TransferResponse struct {
	Reference   string         `json:"reference"`
	DebitEntry  *EntryResponse `json:"debit_entry"`
	CreditEntry *EntryResponse `json:"credit_entry"`
}

// TransferFromUseCase converts a transfer result to a response.
func TransferFromUseCase(t *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		Reference:   t.Reference,
		DebitEntry:  EntryFromDomain(t.DebitEntry),
		CreditEntry: EntryFromDomain(t.CreditEntry),
	}
}

// ConsistencyResponse reports the ledger-wide invariant check.
type ConsistencyResponse struct {
	Consistent bool `json:"consistent"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
