package dto

import (
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// RegisterRequest represents a request to register an owner.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// DepositRequest represents a request to initiate a deposit. The amount is a
// decimal string in major units, e.g. "5000.00".
type DepositRequest struct {
	Amount string `json:"amount"`
}

// ParseAmount parses the request amount into minor units.
func (r *DepositRequest) ParseAmount() (domain.Amount, error) {
	return domain.ParseAmount(r.Amount)
}

// TransferRequest represents a request to transfer to another wallet.
type TransferRequest struct {
	RecipientWalletNumber string `json:"recipient_wallet_number"`
	Amount                string `json:"amount"`
}

// ParseAmount parses the request amount into minor units.
func (r *TransferRequest) ParseAmount() (domain.Amount, error) {
	return domain.ParseAmount(r.Amount)
}
