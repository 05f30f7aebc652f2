package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type storyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newStoryRepository(client *firestore.Client) *storyRepository {
	return &storyRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *storyRepository) storiesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_stories"
	}
	return "stories"
}

func (r *storyRepository) Create(ctx context.Context, s *model.Story) (*model.Story, error) {
	now := time.Now().UTC()
	created := s.Clone()
	if created.ID == "" {
		created.ID = types.NewStoryID()
	}
	created.Status = created.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := r.client.Collection(r.storiesCollection()).Doc(created.ID.String()).Set(ctx, created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create story", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *storyRepository) Get(ctx context.Context, id types.StoryID) (*model.Story, error) {
	docSnap, err := r.client.Collection(r.storiesCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "story not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get story", goerr.V("id", id))
	}

	var s model.Story
	if err := docSnap.DataTo(&s); err != nil {
		return nil, goerr.Wrap(err, "failed to decode story", goerr.V("id", id))
	}
	return &s, nil
}

func (r *storyRepository) List(ctx context.Context) ([]*model.Story, error) {
	iter := r.client.Collection(r.storiesCollection()).OrderBy("CreatedAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	result := []*model.Story{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate stories")
		}
		var s model.Story
		if err := doc.DataTo(&s); err != nil {
			return nil, goerr.Wrap(err, "failed to decode story", goerr.V("doc", doc.Ref.ID))
		}
		result = append(result, &s)
	}
	return result, nil
}

func (r *storyRepository) Update(ctx context.Context, s *model.Story) (*model.Story, error) {
	docRef := r.client.Collection(r.storiesCollection()).Doc(s.ID.String())

	var updated model.Story
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, "story not found", goerr.V("id", s.ID))
			}
			return goerr.Wrap(err, "failed to get story", goerr.V("id", s.ID))
		}
		if err := doc.DataTo(&updated); err != nil {
			return goerr.Wrap(err, "failed to decode story", goerr.V("id", s.ID))
		}

		// Content-only update: workflow fields stay untouched.
		updated.Title = s.Title
		updated.Body = s.Body
		updated.UpdatedAt = time.Now().UTC()

		return tx.Set(docRef, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *storyRepository) UpdateStatus(ctx context.Context, id types.StoryID, from, to types.StoryStatus, reviewerID, approverID types.UserID) (*model.Story, error) {
	docRef := r.client.Collection(r.storiesCollection()).Doc(id.String())

	var updated model.Story
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, "story not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get story", goerr.V("id", id))
		}
		if err := doc.DataTo(&updated); err != nil {
			return goerr.Wrap(err, "failed to decode story", goerr.V("id", id))
		}
		if updated.Status != from {
			return goerr.Wrap(model.ErrConflict, "story status changed since authorization",
				goerr.V("id", id),
				goerr.V("expected", from),
				goerr.V("actual", updated.Status))
		}

		updated.Status = to
		updated.AssignedReviewerID = reviewerID
		updated.AssignedApproverID = approverID
		updated.UpdatedAt = time.Now().UTC()

		return tx.Set(docRef, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *storyRepository) Delete(ctx context.Context, id types.StoryID) error {
	docRef := r.client.Collection(r.storiesCollection()).Doc(id.String())

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrNotFound, "story not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get story", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete story", goerr.V("id", id))
	}
	return nil
}
