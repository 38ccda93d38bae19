package effect

import "testing"

func TestNewNotify(t *testing.T) {
	e := NewNotify(NotifyPayload{
		UserIDs: []string{"user-1"},
		Type:    "application_status",
		Title:   "Updated",
	})

	if e.ID == "" {
		t.Error("effect should have an ID")
	}
	if e.Kind != KindNotify {
		t.Errorf("Kind = %q, want notify", e.Kind)
	}
	if e.Notify == nil || len(e.Notify.UserIDs) != 1 {
		t.Error("notify payload should carry the recipients")
	}
	if e.AwardXP != nil || e.ElevateRole != nil {
		t.Error("only the notify payload should be set")
	}
}

func TestEffect_IdempotencyKey(t *testing.T) {
	tests := []struct {
		name     string
		effect   Effect
		expected string
	}{
		{
			"xp award",
			NewAwardXP(XPEventMilestoneComplete, "user-1", "ms-9"),
			"xp:milestone/complete:user-1:ms-9",
		},
		{
			"role elevation",
			NewElevateRole("user-1", "CLUB_MEMBER"),
			"role:user-1:CLUB_MEMBER",
		},
		{
			"notify is repeatable",
			NewNotify(NotifyPayload{UserIDs: []string{"user-1"}}),
			"",
		},
		{
			"kind without payload",
			Effect{Kind: KindAwardXP},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.effect.IdempotencyKey(); got != tt.expected {
				t.Errorf("IdempotencyKey() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEffect_IdempotencyKey_Deterministic(t *testing.T) {
	a := NewAwardXP(XPEventProjectComplete, "user-1", "proj-1")
	b := NewAwardXP(XPEventProjectComplete, "user-1", "proj-1")

	if a.ID == b.ID {
		t.Error("effect IDs must be unique per emission")
	}
	if a.IdempotencyKey() != b.IdempotencyKey() {
		t.Error("idempotency keys must be deterministic across emissions")
	}
}

func TestKind_IsValid(t *testing.T) {
	for _, k := range []Kind{KindNotify, KindAwardXP, KindElevateRole} {
		if !k.IsValid() {
			t.Errorf("Kind(%q).IsValid() = false, want true", k)
		}
	}
	if Kind("email").IsValid() {
		t.Error("unknown kind should be invalid")
	}
}
