package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

type storyRepository struct {
	mu      sync.RWMutex
	stories map[types.StoryID]*model.Story
}

func newStoryRepository() *storyRepository {
	return &storyRepository{
		stories: make(map[types.StoryID]*model.Story),
	}
}

func (r *storyRepository) Create(ctx context.Context, s *model.Story) (*model.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := s.Clone()
	if created.ID == "" {
		created.ID = types.NewStoryID()
	}
	created.Status = created.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.stories[created.ID] = created
	return created.Clone(), nil
}

func (r *storyRepository) Get(ctx context.Context, id types.StoryID) (*model.Story, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.stories[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "story not found", goerr.V("id", id))
	}
	return s.Clone(), nil
}

func (r *storyRepository) List(ctx context.Context) ([]*model.Story, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Story, 0, len(r.stories))
	for _, s := range r.stories {
		result = append(result, s.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *storyRepository) Update(ctx context.Context, s *model.Story) (*model.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.stories[s.ID]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "story not found", goerr.V("id", s.ID))
	}

	// Content-only update: workflow fields stay untouched.
	existing.Title = s.Title
	existing.Body = s.Body
	existing.UpdatedAt = time.Now().UTC()

	return existing.Clone(), nil
}

func (r *storyRepository) UpdateStatus(ctx context.Context, id types.StoryID, from, to types.StoryStatus, reviewerID, approverID types.UserID) (*model.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.stories[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "story not found", goerr.V("id", id))
	}
	if existing.Status != from {
		return nil, goerr.Wrap(model.ErrConflict, "story status changed since authorization",
			goerr.V("id", id),
			goerr.V("expected", from),
			goerr.V("actual", existing.Status))
	}

	existing.Status = to
	existing.AssignedReviewerID = reviewerID
	existing.AssignedApproverID = approverID
	existing.UpdatedAt = time.Now().UTC()

	return existing.Clone(), nil
}

func (r *storyRepository) Delete(ctx context.Context, id types.StoryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stories[id]; !exists {
		return goerr.Wrap(model.ErrNotFound, "story not found", goerr.V("id", id))
	}
	delete(r.stories, id)
	return nil
}
