package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// OpenRevisionInput carries the fields for OpenRevision.
type OpenRevisionInput struct {
	StoryID       types.StoryID
	RequestedByID types.UserID
	AssignedToID  types.UserID
	Reason        string
}

// OpenRevision opens a revision request against a story. The requester
// must be the assigned reviewer/approver for the story's current status
// (with an eligible role) or hold EDITOR+. On success the story has been
// reverted to DRAFT with both assignments cleared, atomically with the
// creation of the OPEN revision request. A concurrent mutation of the
// story surfaces as ErrConflict with no partial effect.
func (uc *Workflow) OpenRevision(ctx context.Context, in OpenRevisionInput) (*model.RevisionRequest, *model.Story, error) {
	requester, err := uc.repo.User().Get(ctx, in.RequestedByID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to get requester", goerr.V(ActorIDKey, in.RequestedByID))
	}
	story, err := uc.repo.Story().Get(ctx, in.StoryID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to get story", goerr.V(StoryIDKey, in.StoryID))
	}

	status := story.Status.Normalize()
	if !status.IsRevisable() {
		return nil, nil, goerr.Wrap(ErrIllegalTransition, "story status does not accept revision requests",
			goerr.V(StoryIDKey, in.StoryID), goerr.V("status", status))
	}
	if !uc.engine.CanRequestRevision(requester.Role, status, story.AssignedReviewerID, story.AssignedApproverID, requester.ID) {
		return nil, nil, goerr.Wrap(ErrNotAssigned, "requester is not the designated reviewer or approver",
			goerr.V(StoryIDKey, in.StoryID), goerr.V(ActorIDKey, in.RequestedByID), goerr.V("status", status))
	}

	if len(strings.TrimSpace(in.Reason)) < uc.engine.MinReasonLength() {
		return nil, nil, goerr.Wrap(ErrValidation, "revision reason is too short",
			goerr.V("min_length", uc.engine.MinReasonLength()))
	}
	if in.AssignedToID.IsEmpty() {
		return nil, nil, goerr.Wrap(ErrValidation, "revision assignee is required")
	}
	if err := uc.requireUser(ctx, in.AssignedToID); err != nil {
		return nil, nil, err
	}

	rev := &model.RevisionRequest{
		StoryID:         in.StoryID,
		RequestedByID:   requester.ID,
		RequestedByRole: requester.Role,
		AssignedToID:    in.AssignedToID,
		Reason:          in.Reason,
	}

	reverted, created, err := uc.repo.OpenRevision(ctx, in.StoryID, status, rev)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open revision", goerr.V(StoryIDKey, in.StoryID))
	}

	uc.emit(ctx, &model.WorkflowEvent{
		Kind:       model.EventRevisionRequested,
		StoryID:    in.StoryID,
		RevisionID: created.ID,
		ActorID:    requester.ID,
		ActorRole:  requester.Role,
		FromStatus: status,
		ToStatus:   reverted.Status,
		Reason:     in.Reason,
		OccurredAt: time.Now().UTC(),
	})

	return created, reverted, nil
}

// ResolveRevision marks a revision request as resolved. Only the story's
// author may resolve; anyone else gets ErrUnauthorized with nothing
// changed.
func (uc *Workflow) ResolveRevision(ctx context.Context, revisionID types.RevisionID, actorID types.UserID) (*model.Story, error) {
	rev, err := uc.repo.Revision().Get(ctx, revisionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get revision request", goerr.V(RevisionIDKey, revisionID))
	}
	story, err := uc.repo.Story().Get(ctx, rev.StoryID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get story", goerr.V(StoryIDKey, rev.StoryID))
	}

	if actorID != story.AuthorID {
		return nil, goerr.Wrap(ErrUnauthorized, "only the story author may resolve revisions",
			goerr.V(RevisionIDKey, revisionID), goerr.V(ActorIDKey, actorID))
	}

	resolved, err := uc.repo.Revision().Resolve(ctx, revisionID, actorID, time.Now().UTC())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve revision", goerr.V(RevisionIDKey, revisionID))
	}

	uc.emit(ctx, &model.WorkflowEvent{
		Kind:       model.EventRevisionResolved,
		StoryID:    story.ID,
		RevisionID: resolved.ID,
		ActorID:    actorID,
		ActorRole:  story.AuthorRole,
		FromStatus: story.Status,
		ToStatus:   story.Status,
		OccurredAt: time.Now().UTC(),
	})

	return story, nil
}

// ResolveAllOpenRevisions resolves every open revision request for a
// story and returns the number resolved. Author-only, like
// ResolveRevision. Zero open revisions resolves to zero, not an error, so
// calling it twice in a row is safe.
func (uc *Workflow) ResolveAllOpenRevisions(ctx context.Context, storyID types.StoryID, actorID types.UserID) (int, error) {
	story, err := uc.repo.Story().Get(ctx, storyID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get story", goerr.V(StoryIDKey, storyID))
	}

	if actorID != story.AuthorID {
		return 0, goerr.Wrap(ErrUnauthorized, "only the story author may resolve revisions",
			goerr.V(StoryIDKey, storyID), goerr.V(ActorIDKey, actorID))
	}

	count, err := uc.repo.Revision().ResolveAllOpen(ctx, storyID, actorID, time.Now().UTC())
	if err != nil {
		return 0, goerr.Wrap(err, "failed to resolve open revisions", goerr.V(StoryIDKey, storyID))
	}

	if count > 0 {
		uc.emit(ctx, &model.WorkflowEvent{
			Kind:       model.EventRevisionResolved,
			StoryID:    storyID,
			ActorID:    actorID,
			ActorRole:  story.AuthorRole,
			FromStatus: story.Status,
			ToStatus:   story.Status,
			OccurredAt: time.Now().UTC(),
		})
	}

	return count, nil
}

// ListRevisions returns the revision requests for a story, newest first.
func (uc *Workflow) ListRevisions(ctx context.Context, storyID types.StoryID, openOnly bool) ([]*model.RevisionRequest, error) {
	if openOnly {
		return uc.repo.Revision().ListOpenByStory(ctx, storyID)
	}
	return uc.repo.Revision().ListByStory(ctx, storyID)
}
