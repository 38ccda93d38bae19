package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/launchpad/domain/admission"
)

// guardAllowedEdge checks the requested edge against the role policy.
// In statekit, guards receive the context by value; since our context is
// *ReviewContext, the guard receives *ReviewContext directly.
func guardAllowedEdge(ctx *ReviewContext, event statekit.Event) bool {
	if ctx == nil || ctx.Application == nil {
		return false
	}

	payload, ok := event.Payload.(TransitionPayload)
	if !ok {
		return false
	}

	return admission.AllowedFor(payload.Actor, ctx.Application.UserID, ctx.Application.Status, payload.To)
}

// recordTransition stamps the transition on the aggregate.
// Actions receive a pointer to the context, hence **ReviewContext.
func recordTransition(ctx **ReviewContext, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Application == nil {
		return
	}

	payload, ok := event.Payload.(TransitionPayload)
	if !ok {
		return
	}

	(*ctx).Application.ApplyTransition(payload.To, payload.Actor.UserID, payload.Notes, payload.At)
}
