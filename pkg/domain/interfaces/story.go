package interfaces

import (
	"context"

	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// StoryRepository defines the interface for Story data access
type StoryRepository interface {
	// Create creates a new story with a generated ID
	Create(ctx context.Context, s *model.Story) (*model.Story, error)

	// Get retrieves a story by ID
	Get(ctx context.Context, id types.StoryID) (*model.Story, error)

	// List retrieves all stories
	List(ctx context.Context) ([]*model.Story, error)

	// Update updates an existing story's content fields. Status and
	// assignment fields are changed through UpdateStatus or the
	// repository-level OpenRevision only.
	Update(ctx context.Context, s *model.Story) (*model.Story, error)

	// UpdateStatus moves a story from one status to another with
	// compare-and-swap semantics: if the story's current status no longer
	// equals from, ErrConflict is returned and nothing changes. The
	// reviewer and approver values replace the story's assignment fields
	// as part of the same write.
	UpdateStatus(ctx context.Context, id types.StoryID, from, to types.StoryStatus, reviewerID, approverID types.UserID) (*model.Story, error)

	// Delete deletes a story by ID
	Delete(ctx context.Context, id types.StoryID) error
}
