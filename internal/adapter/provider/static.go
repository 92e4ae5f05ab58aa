package provider

import (
	"context"

	"github.com/google/uuid"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// StaticProvider simulates a successful processor integration. It hands out
// synthetic references so the deposit flow can run without network access.
type StaticProvider struct {
	baseURL string
}

// NewStaticProvider creates a new StaticProvider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{baseURL: "https://checkout.invalid/authorize/"}
}

// RequestPaymentHandle approves the charge with a synthetic reference.
func (p *StaticProvider) RequestPaymentHandle(_ context.Context, reference string, _ domain.Amount, _ string) (*usecase.PaymentHandle, error) {
	providerRef := uuid.NewString()

	return &usecase.PaymentHandle{
		AuthorizationURL:  p.baseURL + reference,
		ProviderReference: providerRef,
	}, nil
}
