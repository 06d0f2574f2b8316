// Package authz holds the authorization predicates applied after a session
// has been verified. Every function here is pure: callers pass the
// identity recovered from the token and the state loaded from the store.
package authz

import "inkpost/backend/app/models"

// Identity is the caller as recovered from a verified session token. It is
// a snapshot taken when the token was issued.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

const (
	ReasonRole      = "You must have the Author role to access this feature."
	ReasonOwnership = "not the owner"
)

// Decision is the outcome of a gate: allowed, or denied with a reason.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision { return Decision{Allowed: true} }

func Deny(reason string) Decision { return Decision{Reason: reason} }

// RoleGate allows only AUTHOR identities.
func RoleGate(role string) Decision {
	if role == models.RoleAuthor {
		return Allow()
	}
	return Deny(ReasonRole)
}

// OwnershipGate allows the identity whose id matches the resource owner.
func OwnershipGate(id Identity, ownerID string) Decision {
	if id.ID != "" && id.ID == ownerID {
		return Allow()
	}
	return Deny(ReasonOwnership)
}

// CanView reports whether viewer may read p. A nil viewer is anonymous.
func CanView(viewer *Identity, p *models.Post) bool {
	if p.Status == models.PostPublished {
		return true
	}
	return viewer != nil && OwnershipGate(*viewer, p.AuthorID).Allowed
}

// ViewerID returns the id used to scope visibility queries, empty for
// anonymous callers.
func ViewerID(viewer *Identity) string {
	if viewer == nil {
		return ""
	}
	return viewer.ID
}
