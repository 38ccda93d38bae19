package identity

import "errors"

// Domain errors for authorization decisions.
var (
	// ErrForbidden indicates the actor's roles do not permit the operation.
	ErrForbidden = errors.New("actor is not permitted to perform this action")
)
