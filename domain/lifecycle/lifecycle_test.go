package lifecycle

import (
	"testing"

	"github.com/felixgeelhaar/launchpad/domain/identity"
)

func TestLegal(t *testing.T) {
	tests := []struct {
		name     string
		kind     EntityKind
		from, to string
		role     identity.Role
		expected bool
	}{
		{"reviewer moves application", KindApplication, "submitted", "under_review", identity.RoleReviewer, true},
		{"reviewer off graph", KindApplication, "submitted", "accepted", identity.RoleReviewer, false},
		{"director off graph", KindApplication, "submitted", "accepted", identity.RoleDirector, true},
		{"director out of terminal", KindApplication, "rejected", "under_review", identity.RoleDirector, true},
		{"applicant withdraws", KindApplication, "under_review", "withdrawn", identity.RoleApplicant, true},
		{"applicant approves", KindApplication, "under_review", "approved", identity.RoleApplicant, false},
		{"same state is not an edge", KindApplication, "approved", "approved", identity.RoleDirector, false},
		{"unknown status rejected", KindApplication, "draft", "submitted", identity.RoleDirector, false},

		{"milestone start", KindMilestone, "pending", "in_progress", identity.RoleClubMember, true},
		{"milestone skip", KindMilestone, "pending", "completed", identity.RoleClubMember, false},
		{"milestone cancel", KindMilestone, "in_progress", "cancelled", identity.RoleClubMember, true},
		{"enrollment shares milestone graph", KindEnrollment, "in_progress", "completed", identity.RoleClubMember, true},

		{"ticket resolve", KindTicket, "in_progress", "resolved", identity.RoleReviewer, true},
		{"ticket reopen", KindTicket, "resolved", "in_progress", identity.RoleReviewer, true},
		{"ticket reopen closed", KindTicket, "closed", "in_progress", identity.RoleDirector, false},

		{"unknown kind", EntityKind("invoice"), "open", "closed", identity.RoleDirector, false},
		{"unknown role", KindMilestone, "pending", "in_progress", identity.Role("GUEST"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Legal(tt.kind, tt.from, tt.to, tt.role); got != tt.expected {
				t.Errorf("Legal(%s, %s->%s, %s) = %v, want %v", tt.kind, tt.from, tt.to, tt.role, got, tt.expected)
			}
		})
	}
}

func TestEntityKind_IsValid(t *testing.T) {
	for _, kind := range []EntityKind{KindApplication, KindMilestone, KindEnrollment, KindTicket} {
		if !kind.IsValid() {
			t.Errorf("EntityKind(%q).IsValid() = false, want true", kind)
		}
	}
	if EntityKind("invoice").IsValid() {
		t.Error("unknown kind should be invalid")
	}
}
