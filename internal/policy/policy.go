// Package policy is the single place where role and ownership decisions are
// made. Every mutating service operation calls one of these checks first.
package policy

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/google/uuid"
)

// ErrForbidden is returned (wrapped) for every denied decision.
var ErrForbidden = errors.New("forbidden")

// Principal is the authenticated caller, resolved from the session token and
// the account directory. Phone is the identity used for ownership checks.
type Principal struct {
	AccountID uuid.UUID
	Name      string
	Phone     string
	Role      string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

func (p Principal) IsAnonymous() bool {
	return p.AccountID == uuid.Nil
}

// Decision is the outcome of a policy check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Err converts a denied decision into an error wrapping ErrForbidden.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// Admin allows admins only.
func Admin(p Principal) Decision {
	if p.IsAnonymous() {
		return deny("authentication required")
	}
	if !p.IsAdmin() {
		return deny("admin access required")
	}
	return allow()
}

// AdminOrOwner allows admins, or the caller whose session phone matches ownerPhone.
func AdminOrOwner(p Principal, ownerPhone string) Decision {
	if p.IsAnonymous() {
		return deny("authentication required")
	}
	if p.IsAdmin() {
		return allow()
	}
	if ownerPhone != "" && p.Phone == ownerPhone {
		return allow()
	}
	return deny("you can only act on your own records")
}

// AdminOrCreator allows admins, or the account that created the record.
func AdminOrCreator(p Principal, creator uuid.UUID) Decision {
	if p.IsAnonymous() {
		return deny("authentication required")
	}
	if p.IsAdmin() || p.AccountID == creator {
		return allow()
	}
	return deny("you can only act on your own records")
}

// Authenticated allows any signed-in account.
func Authenticated(p Principal) Decision {
	if p.IsAnonymous() {
		return deny("authentication required")
	}
	return allow()
}

// RequireAdmin is shorthand for Admin(p).Err().
func RequireAdmin(p Principal) error {
	return Admin(p).Err()
}

// RequireAdminOrOwner is shorthand for AdminOrOwner(p, ownerPhone).Err().
func RequireAdminOrOwner(p Principal, ownerPhone string) error {
	return AdminOrOwner(p, ownerPhone).Err()
}
