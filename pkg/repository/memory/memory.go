package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/newsdesk-lab/copydesk/pkg/domain/interfaces"
	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository backend, used for tests and
// development mode.
type Memory struct {
	story    *storyRepository
	revision *revisionRepository
	user     *userRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		story:    newStoryRepository(),
		revision: newRevisionRepository(),
		user:     newUserRepository(),
	}
}

func (m *Memory) Story() interfaces.StoryRepository {
	return m.story
}

func (m *Memory) Revision() interfaces.RevisionRepository {
	return m.revision
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

// OpenRevision applies the revision-open compound mutation under both
// store locks, so no observer can see the revision without the reverted
// story or the reverted story with stale assignments.
func (m *Memory) OpenRevision(ctx context.Context, storyID types.StoryID, expectedStatus types.StoryStatus, rev *model.RevisionRequest) (*model.Story, *model.RevisionRequest, error) {
	m.story.mu.Lock()
	defer m.story.mu.Unlock()
	m.revision.mu.Lock()
	defer m.revision.mu.Unlock()

	story, exists := m.story.stories[storyID]
	if !exists {
		return nil, nil, goerr.Wrap(model.ErrNotFound, "story not found", goerr.V("id", storyID))
	}
	if story.Status != expectedStatus {
		return nil, nil, goerr.Wrap(model.ErrConflict, "story status changed since authorization",
			goerr.V("id", storyID),
			goerr.V("expected", expectedStatus),
			goerr.V("actual", story.Status))
	}

	now := time.Now().UTC()

	created := rev.Clone()
	if created.ID == "" {
		created.ID = types.NewRevisionID()
	}
	created.StoryID = storyID
	created.Status = types.RevisionStatusOpen
	created.CreatedAt = now
	created.ResolvedAt = nil
	created.ResolvedByID = ""
	m.revision.revisions[created.ID] = created
	m.revision.byStory[storyID] = append(m.revision.byStory[storyID], created.ID)

	story.Status = types.StoryStatusDraft
	story.AssignedReviewerID = ""
	story.AssignedApproverID = ""
	story.UpdatedAt = now

	return story.Clone(), created.Clone(), nil
}

func (m *Memory) Close() error {
	return nil
}
