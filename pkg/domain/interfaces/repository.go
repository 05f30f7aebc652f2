package interfaces

import (
	"context"

	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	Story() StoryRepository
	Revision() RevisionRepository
	User() UserRepository

	// OpenRevision executes the revision-open compound mutation as a
	// single atomic unit: create the revision request in OPEN state,
	// revert the story to DRAFT and clear both assignment fields. The
	// mutation only applies while the story's status still equals
	// expectedStatus; otherwise ErrConflict is returned and nothing is
	// written. A story must never be observed with a reverted status but
	// stale assignments, or vice versa.
	OpenRevision(ctx context.Context, storyID types.StoryID, expectedStatus types.StoryStatus, rev *model.RevisionRequest) (*model.Story, *model.RevisionRequest, error)

	Close() error
}
