package usecase

import "errors"

// Sentinel errors for the workflow facade. Mutating operations always
// return one of these (or a storage error) so callers can map failures to
// user-facing responses; pure predicates return plain booleans instead.
var (
	// ErrUnauthorized: the role lacks the baseline capability for the
	// resource kind, or the actor may not perform this mutation at all.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrIllegalTransition: the requested state change is not in the
	// matrix for this role/state pair.
	ErrIllegalTransition = errors.New("illegal transition")

	// ErrNotAssigned: the actor is not the designated reviewer, approver
	// or translator and holds no override role.
	ErrNotAssigned = errors.New("not assigned")

	// ErrValidation: malformed input, e.g. a too-short revision reason or
	// a missing assignee.
	ErrValidation = errors.New("validation failed")
)

// Context keys for error values
const (
	StoryIDKey    = "story_id"
	RevisionIDKey = "revision_id"
	ActorIDKey    = "actor_id"
)
