package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/newsdesk-lab/copydesk/pkg/domain/interfaces"
	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore is the production repository backend.
type Firestore struct {
	client   *firestore.Client
	story    *storyRepository
	revision *revisionRepository
	user     *userRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used to isolate test
// runs against a shared project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.story.collectionPrefix = prefix
		f.revision.collectionPrefix = prefix
		f.user.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:   client,
		story:    newStoryRepository(client),
		revision: newRevisionRepository(client),
		user:     newUserRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Story() interfaces.StoryRepository {
	return f.story
}

func (f *Firestore) Revision() interfaces.RevisionRepository {
	return f.revision
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

// OpenRevision runs the revision-open compound mutation inside a single
// Firestore transaction. The story document is re-read inside the
// transaction; if its status no longer equals expectedStatus the
// transaction aborts with ErrConflict and neither document is written.
func (f *Firestore) OpenRevision(ctx context.Context, storyID types.StoryID, expectedStatus types.StoryStatus, rev *model.RevisionRequest) (*model.Story, *model.RevisionRequest, error) {
	var story model.Story
	created := rev.Clone()
	if created.ID == "" {
		created.ID = types.NewRevisionID()
	}

	storyRef := f.client.Collection(f.story.storiesCollection()).Doc(storyID.String())
	revRef := f.client.Collection(f.revision.revisionsCollection()).Doc(created.ID.String())

	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(storyRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, "story not found", goerr.V("id", storyID))
			}
			return goerr.Wrap(err, "failed to get story", goerr.V("id", storyID))
		}
		if err := doc.DataTo(&story); err != nil {
			return goerr.Wrap(err, "failed to decode story", goerr.V("id", storyID))
		}
		if story.Status != expectedStatus {
			return goerr.Wrap(model.ErrConflict, "story status changed since authorization",
				goerr.V("id", storyID),
				goerr.V("expected", expectedStatus),
				goerr.V("actual", story.Status))
		}

		now := time.Now().UTC()

		created.StoryID = storyID
		created.Status = types.RevisionStatusOpen
		created.CreatedAt = now
		created.ResolvedAt = nil
		created.ResolvedByID = ""

		story.Status = types.StoryStatusDraft
		story.AssignedReviewerID = ""
		story.AssignedApproverID = ""
		story.UpdatedAt = now

		if err := tx.Set(storyRef, &story); err != nil {
			return goerr.Wrap(err, "failed to revert story", goerr.V("id", storyID))
		}
		if err := tx.Set(revRef, created); err != nil {
			return goerr.Wrap(err, "failed to create revision request", goerr.V("id", created.ID))
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &story, created, nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}
