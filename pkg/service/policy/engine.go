package policy

import (
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// DefaultMinReasonLength is the minimum length of a revision reason when
// no policy file overrides it.
const DefaultMinReasonLength = 10

// Engine bundles the capability table, the transition matrix and the
// ownership rules behind one value. It is constructed once at process
// start from the default policy plus optional configuration and is safe
// for concurrent use; every method is a pure lookup.
type Engine struct {
	caps         *CapabilityTable
	matrix       *TransitionMatrix
	minReasonLen int
}

// Option configures an Engine.
type Option func(*Engine)

// WithGrants widens the capability table with extra grants, typically
// loaded from the policy file.
func WithGrants(grants ...Grant) Option {
	return func(e *Engine) {
		e.caps = NewCapabilityTable(grants...)
	}
}

// WithMinReasonLength overrides the minimum revision reason length.
func WithMinReasonLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minReasonLen = n
		}
	}
}

// New builds an Engine with the default editorial policy.
func New(opts ...Option) *Engine {
	e := &Engine{
		caps:         NewCapabilityTable(),
		matrix:       NewTransitionMatrix(),
		minReasonLen: DefaultMinReasonLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HasPermission is the coarse capability gate: role x resource kind x
// action. Unknown roles always deny.
func (e *Engine) HasPermission(role types.Role, kind types.ResourceKind, action types.Action) bool {
	return e.caps.Allows(role, kind, action)
}

// Capabilities returns the underlying capability table.
func (e *Engine) Capabilities() *CapabilityTable {
	return e.caps
}

// CanTransition reports whether the role may move a story between the two
// statuses.
func (e *Engine) CanTransition(role types.Role, from, to types.StoryStatus) bool {
	return e.matrix.CanTransition(role, from, to)
}

// LegalNextStatuses returns the statuses reachable by the role from the
// given status.
func (e *Engine) LegalNextStatuses(role types.Role, from types.StoryStatus) []types.StoryStatus {
	return e.matrix.LegalNextStatuses(role, from)
}

// CanTransitionStage is the stage-model view of CanTransition.
func (e *Engine) CanTransitionStage(role types.Role, from, to types.StoryStage) bool {
	return e.matrix.CanTransitionStage(role, from, to)
}

// LegalNextStages returns the stages reachable by the role from the given
// stage.
func (e *Engine) LegalNextStages(role types.Role, from types.StoryStage) []types.StoryStage {
	return e.matrix.LegalNextStages(role, from)
}

// CanEdit applies the ownership rules; see the package-level CanEdit.
func (e *Engine) CanEdit(role types.Role, authorID, actorID types.UserID, status types.StoryStatus, reviewerID, approverID types.UserID, isTranslation bool) bool {
	return CanEdit(role, authorID, actorID, status, reviewerID, approverID, isTranslation)
}

// CanRequestRevision applies the assignment rules; see the package-level
// CanRequestRevision.
func (e *Engine) CanRequestRevision(role types.Role, status types.StoryStatus, reviewerID, approverID, actorID types.UserID) bool {
	return CanRequestRevision(role, status, reviewerID, approverID, actorID)
}

// MinReasonLength returns the minimum accepted revision reason length.
func (e *Engine) MinReasonLength() int {
	return e.minReasonLen
}
