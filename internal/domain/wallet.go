package domain

import "time"

// WalletNumberLength is the fixed width of public wallet numbers.
const WalletNumberLength = 13

// Wallet holds the spendable balance for a single owner. Exactly one wallet
// exists per owner, created together with the owner record.
type Wallet struct {
	ID           string
	OwnerID      string
	WalletNumber string
	Balance      Amount
	Currency     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateDebit checks whether the wallet can be debited by amount without
// going negative.
func (w *Wallet) ValidateDebit(amount Amount) error {
	if w.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientBalance
	}

	return nil
}
