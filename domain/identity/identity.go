// Package identity provides the acting-principal model for the platform.
// Authentication and token verification happen upstream; this package only
// describes the verified identity the core receives.
package identity

// Role represents a permission level within the program.
type Role string

// Canonical roles.
const (
	RoleApplicant  Role = "APPLICANT"   // Submitted an application, not yet a member
	RoleClubMember Role = "CLUB_MEMBER" // Accepted into the club
	RoleReviewer   Role = "REVIEWER"    // May review applications along the normal graph
	RoleDirector   Role = "DIRECTOR"    // May force any status change
)

// IsValid returns true if the role is a recognized canonical role.
func (r Role) IsValid() bool {
	switch r {
	case RoleApplicant, RoleClubMember, RoleReviewer, RoleDirector:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Principal is the verified caller identity supplied by the identity service.
type Principal struct {
	UserID string `json:"user_id"`
	Roles  []Role `json:"roles"`
}

// HasRole returns true if the principal carries the given role.
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanReview returns true if the principal may apply normal review edges.
func (p Principal) CanReview() bool {
	return p.HasRole(RoleReviewer) || p.HasRole(RoleDirector)
}

// CanForceStatus returns true if the principal may bypass the normal graph.
func (p Principal) CanForceStatus() bool {
	return p.HasRole(RoleDirector)
}
