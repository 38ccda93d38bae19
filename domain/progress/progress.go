// Package progress provides the shared completion-percentage arithmetic
// used by projects, course enrollments, and achievements.
package progress

import "math"

// Percent returns the completion percentage for completed out of total
// children, rounded to the nearest integer. A total of zero yields zero.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// FromFlags returns the completion percentage for a set of children where
// each flag reports whether that child is completed.
func FromFlags(completed []bool) int {
	done := 0
	for _, c := range completed {
		if c {
			done++
		}
	}
	return Percent(done, len(completed))
}
