package postgres

import (
	"crypto/rand"
	"math/big"

	"github.com/oklog/ulid/v2"

	"github.com/iho/gowallet/internal/domain"
)

// ULIDGenerator generates ULID-based IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// WalletNumberGenerator draws fixed-width wallet numbers uniformly from the
// numeric space, leading zeros included.
type WalletNumberGenerator struct {
	max *big.Int
}

// NewWalletNumberGenerator creates a new WalletNumberGenerator.
func NewWalletNumberGenerator() *WalletNumberGenerator {
	max := big.NewInt(10)
	max.Exp(max, big.NewInt(domain.WalletNumberLength), nil)

	return &WalletNumberGenerator{max: max}
}

// Generate draws a wallet number from crypto/rand.
func (g *WalletNumberGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, g.max)
	if err != nil {
		return "", err
	}

	digits := n.String()
	for len(digits) < domain.WalletNumberLength {
		digits = "0" + digits
	}

	return digits, nil
}
