package model

import (
	"time"

	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// RevisionRequest records that a story needs rework. It is created only
// as the side effect of a revision-request action, never standalone.
type RevisionRequest struct {
	ID      types.RevisionID
	StoryID types.StoryID

	RequestedByID types.UserID
	// RequestedByRole is snapshotted at request time.
	RequestedByRole types.Role

	// AssignedToID is the user expected to do the rework, usually the
	// story's author.
	AssignedToID types.UserID

	Reason string

	Status types.RevisionStatus

	CreatedAt    time.Time
	ResolvedAt   *time.Time
	ResolvedByID types.UserID
}

// IsOpen reports whether the revision request is still unresolved.
func (r *RevisionRequest) IsOpen() bool {
	return r.ResolvedAt == nil
}

// Clone returns a deep copy of the revision request.
func (r *RevisionRequest) Clone() *RevisionRequest {
	if r == nil {
		return nil
	}
	cloned := *r
	if r.ResolvedAt != nil {
		t := *r.ResolvedAt
		cloned.ResolvedAt = &t
	}
	return &cloned
}
