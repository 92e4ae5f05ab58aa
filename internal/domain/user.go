package domain

import (
	"context"
	"errors"
	"sort"
	"time"
)

// User represents a wallet owner.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level.
type Role string

const (
	// RoleOwner may deposit, transfer and read their own wallet.
	RoleOwner Role = "owner"

	// RoleAuditor may only read wallet state, no mutations.
	RoleAuditor Role = "auditor"
)

var validRoles = map[Role]bool{
	RoleOwner:   true,
	RoleAuditor: true,
}

// IsValid checks if the role is a valid role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// Capability gates a single engine operation. Capabilities are derived from
// the role once, at token issue; the engine only ever checks set membership.
type Capability string

const (
	CapabilityDeposit  Capability = "deposit"
	CapabilityTransfer Capability = "transfer"
	CapabilityRead     Capability = "read"
)

// Capabilities returns the capability set granted to the role.
func (r Role) Capabilities() CapabilitySet {
	switch r {
	case RoleOwner:
		return NewCapabilitySet(CapabilityDeposit, CapabilityTransfer, CapabilityRead)
	case RoleAuditor:
		return NewCapabilitySet(CapabilityRead)
	default:
		return NewCapabilitySet()
	}
}

// CapabilitySet is an opaque set of granted capabilities.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from the given capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}

	return s
}

// CapabilitySetFromStrings rebuilds a set from its serialized form.
func CapabilitySetFromStrings(caps []string) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[Capability(c)] = struct{}{}
	}

	return s
}

// Has reports whether the set grants the capability.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Strings returns the set in a stable serializable form.
func (s CapabilitySet) Strings() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, string(c))
	}

	sort.Strings(out)

	return out
}

// Identity is the verified caller of an engine operation, as supplied by the
// identity collaborator. The engine trusts it and performs no authentication
// itself.
type Identity struct {
	OwnerID      string
	Capabilities CapabilitySet
}

type identityContextKey struct{}

// ContextWithIdentity attaches the verified identity to the context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the verified identity from the context.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*Identity)
	return id, ok
}

// Authentication errors
var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidToken          = errors.New("invalid token")
	ErrExpiredToken          = errors.New("token has expired")
	ErrMissingCapability     = errors.New("capability not granted for this operation")
	ErrDuplicateEmail        = errors.New("user with this email already exists")
	ErrInactiveUser          = errors.New("user account is inactive")
	ErrUserNotFound          = errors.New("user not found")
)
