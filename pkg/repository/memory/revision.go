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

type revisionRepository struct {
	mu        sync.RWMutex
	revisions map[types.RevisionID]*model.RevisionRequest
	byStory   map[types.StoryID][]types.RevisionID
}

func newRevisionRepository() *revisionRepository {
	return &revisionRepository{
		revisions: make(map[types.RevisionID]*model.RevisionRequest),
		byStory:   make(map[types.StoryID][]types.RevisionID),
	}
}

func (r *revisionRepository) Get(ctx context.Context, id types.RevisionID) (*model.RevisionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rev, exists := r.revisions[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "revision request not found", goerr.V("id", id))
	}
	return rev.Clone(), nil
}

func (r *revisionRepository) ListByStory(ctx context.Context, storyID types.StoryID) ([]*model.RevisionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listByStoryLocked(storyID, false), nil
}

func (r *revisionRepository) ListOpenByStory(ctx context.Context, storyID types.StoryID) ([]*model.RevisionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listByStoryLocked(storyID, true), nil
}

func (r *revisionRepository) listByStoryLocked(storyID types.StoryID, openOnly bool) []*model.RevisionRequest {
	result := []*model.RevisionRequest{}
	for _, id := range r.byStory[storyID] {
		rev := r.revisions[id]
		if openOnly && !rev.IsOpen() {
			continue
		}
		result = append(result, rev.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (r *revisionRepository) Resolve(ctx context.Context, id types.RevisionID, by types.UserID, at time.Time) (*model.RevisionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rev, exists := r.revisions[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "revision request not found", goerr.V("id", id))
	}
	if !rev.IsOpen() {
		return nil, goerr.Wrap(model.ErrConflict, "revision request already resolved", goerr.V("id", id))
	}

	resolvedAt := at.UTC()
	rev.Status = types.RevisionStatusResolved
	rev.ResolvedAt = &resolvedAt
	rev.ResolvedByID = by

	return rev.Clone(), nil
}

func (r *revisionRepository) ResolveAllOpen(ctx context.Context, storyID types.StoryID, by types.UserID, at time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resolvedAt := at.UTC()
	count := 0
	for _, id := range r.byStory[storyID] {
		rev := r.revisions[id]
		if !rev.IsOpen() {
			continue
		}
		rev.Status = types.RevisionStatusResolved
		rev.ResolvedAt = &resolvedAt
		rev.ResolvedByID = by
		count++
	}
	return count, nil
}
