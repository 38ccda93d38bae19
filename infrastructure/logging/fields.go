package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/launchpad/domain/effect"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for lifecycle logging.

// ApplicationID adds an application ID field.
func ApplicationID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("application_id", id)
	}
}

// UserID adds a user ID field.
func UserID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("user_id", id)
	}
}

// Actor adds an acting-user field.
func Actor(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("actor", id)
	}
}

// FromStatus adds a from_status field for transitions.
func FromStatus(s string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("from_status", s)
	}
}

// ToStatus adds a to_status field for transitions.
func ToStatus(s string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("to_status", s)
	}
}

// EffectKind adds an effect kind field.
func EffectKind(k effect.Kind) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("effect_kind", string(k))
	}
}

// EffectID adds an effect ID field.
func EffectID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("effect_id", id)
	}
}

// Target adds a dispatch target field.
func Target(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("target", name)
	}
}

// Progress adds a progress percentage field.
func Progress(p int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("progress", p)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Str("error", err.Error())
	}
}

// Apply applies fields to a bolt event.
func Apply(e *bolt.Event, fields ...Field) *bolt.Event {
	for _, f := range fields {
		e = f(e)
	}
	return e
}
