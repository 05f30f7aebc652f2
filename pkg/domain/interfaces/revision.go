package interfaces

import (
	"context"
	"time"

	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// RevisionRepository defines the interface for RevisionRequest data
// access. Revision requests are only created through the
// repository-level OpenRevision compound mutation.
type RevisionRepository interface {
	// Get retrieves a revision request by ID
	Get(ctx context.Context, id types.RevisionID) (*model.RevisionRequest, error)

	// ListByStory retrieves all revision requests for a story, newest
	// first
	ListByStory(ctx context.Context, storyID types.StoryID) ([]*model.RevisionRequest, error)

	// ListOpenByStory retrieves the unresolved revision requests for a
	// story, newest first
	ListOpenByStory(ctx context.Context, storyID types.StoryID) ([]*model.RevisionRequest, error)

	// Resolve marks a revision request as resolved. Resolving an already
	// resolved revision returns ErrConflict.
	Resolve(ctx context.Context, id types.RevisionID, by types.UserID, at time.Time) (*model.RevisionRequest, error)

	// ResolveAllOpen resolves every open revision request for a story and
	// returns the number resolved. Zero open revisions is not an error.
	ResolveAllOpen(ctx context.Context, storyID types.StoryID, by types.UserID, at time.Time) (int, error)
}
