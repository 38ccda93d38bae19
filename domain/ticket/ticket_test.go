package ticket

import (
	"fmt"
	"testing"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
	legal := map[Status][]Status{
		StatusOpen:       {StatusInProgress},
		StatusInProgress: {StatusResolved},
		StatusResolved:   {StatusInProgress, StatusClosed},
		StatusClosed:     {},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range legal[from] {
				if next == to {
					want = true
				}
			}
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				if got := CanTransition(from, to); got != want {
					t.Errorf("CanTransition(%q, %q) = %v, want %v", from, to, got, want)
				}
			})
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	if StatusResolved.IsTerminal() {
		t.Error("resolved is reopenable and must not be terminal")
	}
	if !StatusClosed.IsTerminal() {
		t.Error("closed must be terminal")
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("in_progress"); err != nil {
		t.Errorf("ParseStatus(in_progress) error: %v", err)
	}
	if _, err := ParseStatus("reopened"); err == nil {
		t.Error("ParseStatus should reject unknown values")
	}
}
