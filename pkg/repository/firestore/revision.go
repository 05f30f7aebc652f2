package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type revisionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRevisionRepository(client *firestore.Client) *revisionRepository {
	return &revisionRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *revisionRepository) revisionsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_revisions"
	}
	return "revisions"
}

func (r *revisionRepository) Get(ctx context.Context, id types.RevisionID) (*model.RevisionRequest, error) {
	docSnap, err := r.client.Collection(r.revisionsCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "revision request not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get revision request", goerr.V("id", id))
	}

	var rev model.RevisionRequest
	if err := docSnap.DataTo(&rev); err != nil {
		return nil, goerr.Wrap(err, "failed to decode revision request", goerr.V("id", id))
	}
	return &rev, nil
}

func (r *revisionRepository) ListByStory(ctx context.Context, storyID types.StoryID) ([]*model.RevisionRequest, error) {
	return r.queryByStory(ctx, storyID, false)
}

func (r *revisionRepository) ListOpenByStory(ctx context.Context, storyID types.StoryID) ([]*model.RevisionRequest, error) {
	return r.queryByStory(ctx, storyID, true)
}

func (r *revisionRepository) queryByStory(ctx context.Context, storyID types.StoryID, openOnly bool) ([]*model.RevisionRequest, error) {
	q := r.client.Collection(r.revisionsCollection()).Where("StoryID", "==", storyID.String())
	if openOnly {
		q = q.Where("Status", "==", types.RevisionStatusOpen.String())
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	result := []*model.RevisionRequest{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate revision requests", goerr.V("storyID", storyID))
		}
		var rev model.RevisionRequest
		if err := doc.DataTo(&rev); err != nil {
			return nil, goerr.Wrap(err, "failed to decode revision request", goerr.V("doc", doc.Ref.ID))
		}
		result = append(result, &rev)
	}

	// Sorted in memory to avoid requiring a composite index.
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *revisionRepository) Resolve(ctx context.Context, id types.RevisionID, by types.UserID, at time.Time) (*model.RevisionRequest, error) {
	docRef := r.client.Collection(r.revisionsCollection()).Doc(id.String())

	var resolved model.RevisionRequest
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, "revision request not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get revision request", goerr.V("id", id))
		}
		if err := doc.DataTo(&resolved); err != nil {
			return goerr.Wrap(err, "failed to decode revision request", goerr.V("id", id))
		}
		if !resolved.IsOpen() {
			return goerr.Wrap(model.ErrConflict, "revision request already resolved", goerr.V("id", id))
		}

		resolvedAt := at.UTC()
		resolved.Status = types.RevisionStatusResolved
		resolved.ResolvedAt = &resolvedAt
		resolved.ResolvedByID = by

		return tx.Set(docRef, &resolved)
	})
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}

func (r *revisionRepository) ResolveAllOpen(ctx context.Context, storyID types.StoryID, by types.UserID, at time.Time) (int, error) {
	open, err := r.ListOpenByStory(ctx, storyID)
	if err != nil {
		return 0, err
	}

	resolvedAt := at.UTC()
	count := 0
	for _, rev := range open {
		rev.Status = types.RevisionStatusResolved
		rev.ResolvedAt = &resolvedAt
		rev.ResolvedByID = by
		if _, err := r.client.Collection(r.revisionsCollection()).Doc(rev.ID.String()).Set(ctx, rev); err != nil {
			return count, goerr.Wrap(err, "failed to resolve revision request", goerr.V("id", rev.ID))
		}
		count++
	}
	return count, nil
}
