package domain

import (
	"errors"
	"testing"
)

func TestValidateWalletNumber(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		wantErr bool
	}{
		{name: "valid 13 digits", number: "1234567890123"},
		{name: "too short", number: "123456789012", wantErr: true},
		{name: "too long", number: "12345678901234", wantErr: true},
		{name: "non numeric", number: "12345678901ab", wantErr: true},
		{name: "empty", number: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWalletNumber(tt.number)
			if tt.wantErr && !errors.Is(err, ErrInvalidWalletNumber) {
				t.Errorf("expected ErrInvalidWalletNumber, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.org"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("expected %s to be valid, got %v", email, err)
		}
	}

	invalid := []string{"", "no-at-sign", "user@", "@example.com", "user@nodot"}
	for _, email := range invalid {
		if err := ValidateEmail(email); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "StrongPass1"},
		{name: "too short", password: "Ab1", wantErr: true},
		{name: "no digits", password: "OnlyLetters", wantErr: true},
		{name: "no letters", password: "1234567890", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr && !errors.Is(err, ErrPasswordTooWeak) {
				t.Errorf("expected ErrPasswordTooWeak, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
