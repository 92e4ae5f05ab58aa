package domain

import (
	"errors"
	"testing"
)

func TestWalletValidateDebit(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		debit   int64
		wantErr error
	}{
		{name: "sufficient balance", balance: 1000, debit: 300},
		{name: "exact balance", balance: 300, debit: 300},
		{name: "insufficient balance", balance: 50, debit: 300, wantErr: ErrInsufficientBalance},
		{name: "empty wallet", balance: 0, debit: 1, wantErr: ErrInsufficientBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Wallet{Balance: AmountFromMinor(tt.balance)}

			err := w.ValidateDebit(AmountFromMinor(tt.debit))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestEntryStatusTerminal(t *testing.T) {
	if EntryStatusPending.Terminal() {
		t.Error("pending must not be terminal")
	}
	if !EntryStatusSuccess.Terminal() {
		t.Error("success must be terminal")
	}
	if !EntryStatusFailed.Terminal() {
		t.Error("failed must be terminal")
	}
}

func TestRoleCapabilities(t *testing.T) {
	owner := RoleOwner.Capabilities()
	for _, c := range []Capability{CapabilityDeposit, CapabilityTransfer, CapabilityRead} {
		if !owner.Has(c) {
			t.Errorf("owner role missing %s", c)
		}
	}

	auditor := RoleAuditor.Capabilities()
	if !auditor.Has(CapabilityRead) {
		t.Error("auditor role missing read")
	}
	if auditor.Has(CapabilityTransfer) || auditor.Has(CapabilityDeposit) {
		t.Error("auditor role must not mutate")
	}
}

func TestCapabilitySetRoundTrip(t *testing.T) {
	set := NewCapabilitySet(CapabilityTransfer, CapabilityRead)

	rebuilt := CapabilitySetFromStrings(set.Strings())
	if !rebuilt.Has(CapabilityTransfer) || !rebuilt.Has(CapabilityRead) {
		t.Error("capability set did not survive serialization")
	}
	if rebuilt.Has(CapabilityDeposit) {
		t.Error("capability set gained a capability")
	}
}
