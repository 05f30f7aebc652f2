package model

import (
	"time"

	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// WorkflowEventKind classifies audit events emitted by the workflow.
type WorkflowEventKind string

const (
	EventStageChanged      WorkflowEventKind = "stage.changed"
	EventRevisionRequested WorkflowEventKind = "revision.requested"
	EventRevisionResolved  WorkflowEventKind = "revision.resolved"
)

// WorkflowEvent is the audit record handed to the audit sink. Emission is
// best-effort: a failed emit never affects the mutation it describes.
type WorkflowEvent struct {
	Kind       WorkflowEventKind
	StoryID    types.StoryID
	RevisionID types.RevisionID

	ActorID   types.UserID
	ActorRole types.Role

	FromStatus types.StoryStatus
	ToStatus   types.StoryStatus

	Reason string

	OccurredAt time.Time
}
