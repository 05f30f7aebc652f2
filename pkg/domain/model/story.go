package model

import (
	"time"

	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// Story is the subject of the editorial workflow.
type Story struct {
	ID    types.StoryID
	Title string
	Body  string

	// AuthorRole is snapshotted at creation time. Workflow rules that
	// branch on the author's seniority read this field, never the live
	// user record, so later role changes cannot alter in-flight stories.
	AuthorID   types.UserID
	AuthorRole types.Role

	Status types.StoryStatus

	// AssignedReviewerID and AssignedApproverID are set when the story
	// enters IN_REVIEW / PENDING_APPROVAL and cleared together with every
	// revert to DRAFT.
	AssignedReviewerID types.UserID
	AssignedApproverID types.UserID

	// IsTranslation marks a translation story: only its author-of-record
	// may edit it, regardless of role.
	IsTranslation bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stage returns the simplified stage view of the story's status.
func (s *Story) Stage() types.StoryStage {
	return types.StatusToStage(s.Status.Normalize())
}

// Clone returns a deep copy of the story.
func (s *Story) Clone() *Story {
	if s == nil {
		return nil
	}
	cloned := *s
	return &cloned
}
