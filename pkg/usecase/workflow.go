package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
	"github.com/newsdesk-lab/copydesk/pkg/utils/async"
)

// HasPermission is the coarse capability gate of the facade.
func (uc *Workflow) HasPermission(role types.Role, kind types.ResourceKind, action types.Action) bool {
	return uc.engine.HasPermission(role, kind, action)
}

// CanPerform decides whether the actor may apply a CRUD-like action to
// the story: the capability gate first, then the state-specific ownership
// rules for updates. Pure predicate; denial is a plain false.
func (uc *Workflow) CanPerform(action types.Action, role types.Role, actorID types.UserID, story *model.Story) bool {
	if story == nil {
		return false
	}

	kind := types.ResourceStory
	if story.IsTranslation {
		kind = types.ResourceTranslation
	}
	if !uc.engine.HasPermission(role, kind, action) {
		return false
	}

	if action == types.ActionUpdate {
		return uc.engine.CanEdit(role, story.AuthorID, actorID, story.Status,
			story.AssignedReviewerID, story.AssignedApproverID, story.IsTranslation)
	}
	return true
}

// CanTransition reports whether the role may move a story between the two
// statuses.
func (uc *Workflow) CanTransition(role types.Role, from, to types.StoryStatus) bool {
	return uc.engine.CanTransition(role, from, to)
}

// AvailableTransitions returns the statuses the role may move a story to.
func (uc *Workflow) AvailableTransitions(role types.Role, from types.StoryStatus) []types.StoryStatus {
	return uc.engine.LegalNextStatuses(role, from)
}

// AvailableStageTransitions is the stage-model view of
// AvailableTransitions.
func (uc *Workflow) AvailableStageTransitions(role types.Role, from types.StoryStage) []types.StoryStage {
	return uc.engine.LegalNextStages(role, from)
}

// CanEdit applies the ownership rules to engine-supplied state.
func (uc *Workflow) CanEdit(role types.Role, authorID, actorID types.UserID, status types.StoryStatus, reviewerID, approverID types.UserID, isTranslation bool) bool {
	return uc.engine.CanEdit(role, authorID, actorID, status, reviewerID, approverID, isTranslation)
}

// CanRequestRevision applies the assignment rules to engine-supplied
// state.
func (uc *Workflow) CanRequestRevision(role types.Role, status types.StoryStatus, reviewerID, approverID, actorID types.UserID) bool {
	return uc.engine.CanRequestRevision(role, status, reviewerID, approverID, actorID)
}

// CreateStoryInput carries the fields for CreateStory.
type CreateStoryInput struct {
	Title         string
	Body          string
	AuthorID      types.UserID
	IsTranslation bool
}

// CreateStory creates a story in DRAFT, snapshotting the author's role at
// creation time.
func (uc *Workflow) CreateStory(ctx context.Context, in CreateStoryInput) (*model.Story, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, goerr.Wrap(ErrValidation, "story title is required")
	}

	author, err := uc.repo.User().Get(ctx, in.AuthorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get author", goerr.V(ActorIDKey, in.AuthorID))
	}

	kind := types.ResourceStory
	if in.IsTranslation {
		kind = types.ResourceTranslation
	}
	if !uc.engine.HasPermission(author.Role, kind, types.ActionCreate) {
		return nil, goerr.Wrap(ErrUnauthorized, "role may not create this resource",
			goerr.V("role", author.Role), goerr.V("resource", kind))
	}

	story := &model.Story{
		Title:         in.Title,
		Body:          in.Body,
		AuthorID:      author.ID,
		AuthorRole:    author.Role,
		Status:        types.StoryStatusDraft,
		IsTranslation: in.IsTranslation,
	}

	created, err := uc.repo.Story().Create(ctx, story)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create story")
	}
	return created, nil
}

// GetStory retrieves a story by ID.
func (uc *Workflow) GetStory(ctx context.Context, id types.StoryID) (*model.Story, error) {
	return uc.repo.Story().Get(ctx, id)
}

// ListStories retrieves all stories, newest first.
func (uc *Workflow) ListStories(ctx context.Context) ([]*model.Story, error) {
	return uc.repo.Story().List(ctx)
}

// UpdateStoryContent updates a story's title and body after the ownership
// rules allow the actor to edit it.
func (uc *Workflow) UpdateStoryContent(ctx context.Context, id types.StoryID, actorID types.UserID, title, body string) (*model.Story, error) {
	actor, err := uc.repo.User().Get(ctx, actorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get actor", goerr.V(ActorIDKey, actorID))
	}
	story, err := uc.repo.Story().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get story", goerr.V(StoryIDKey, id))
	}

	if !uc.CanPerform(types.ActionUpdate, actor.Role, actor.ID, story) {
		return nil, goerr.Wrap(ErrUnauthorized, "actor may not edit this story",
			goerr.V(StoryIDKey, id), goerr.V(ActorIDKey, actorID), goerr.V("status", story.Status))
	}

	story.Title = title
	story.Body = body
	return uc.repo.Story().Update(ctx, story)
}

// ApplyTransition moves a story to a new status on behalf of the actor.
// The move must be legal in the transition matrix for the actor's role.
// Entering IN_REVIEW requires a reviewer assignment, entering
// PENDING_APPROVAL an approver assignment; reverting to DRAFT or
// NEEDS_REVISION clears both. The write is compare-and-swap on the status
// read here, so a concurrent mutation surfaces as ErrConflict.
func (uc *Workflow) ApplyTransition(ctx context.Context, storyID types.StoryID, actorID types.UserID, to types.StoryStatus, reviewerID, approverID types.UserID) (*model.Story, error) {
	actor, err := uc.repo.User().Get(ctx, actorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get actor", goerr.V(ActorIDKey, actorID))
	}
	story, err := uc.repo.Story().Get(ctx, storyID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get story", goerr.V(StoryIDKey, storyID))
	}

	kind := types.ResourceStory
	if story.IsTranslation {
		kind = types.ResourceTranslation
	}
	if !uc.engine.HasPermission(actor.Role, kind, types.ActionUpdate) {
		return nil, goerr.Wrap(ErrUnauthorized, "role may not update this resource",
			goerr.V("role", actor.Role), goerr.V("resource", kind))
	}
	if !to.IsValid() {
		return nil, goerr.Wrap(ErrValidation, "invalid target status", goerr.V("to", to))
	}
	from := story.Status.Normalize()
	if !uc.engine.CanTransition(actor.Role, from, to) {
		return nil, goerr.Wrap(ErrIllegalTransition, "transition not allowed for role",
			goerr.V("role", actor.Role), goerr.V("from", from), goerr.V("to", to))
	}

	reviewer := story.AssignedReviewerID
	approver := story.AssignedApproverID
	switch to {
	case types.StoryStatusInReview:
		if reviewerID.IsEmpty() {
			return nil, goerr.Wrap(ErrValidation, "reviewer assignment is required for review")
		}
		if err := uc.requireUser(ctx, reviewerID); err != nil {
			return nil, err
		}
		reviewer, approver = reviewerID, ""
	case types.StoryStatusPendingApproval:
		if approverID.IsEmpty() {
			return nil, goerr.Wrap(ErrValidation, "approver assignment is required for approval")
		}
		if err := uc.requireUser(ctx, approverID); err != nil {
			return nil, err
		}
		reviewer, approver = "", approverID
	case types.StoryStatusDraft, types.StoryStatusNeedsRevision:
		reviewer, approver = "", ""
	}

	updated, err := uc.repo.Story().UpdateStatus(ctx, storyID, from, to, reviewer, approver)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to apply transition", goerr.V(StoryIDKey, storyID))
	}

	uc.emit(ctx, &model.WorkflowEvent{
		Kind:       model.EventStageChanged,
		StoryID:    storyID,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		FromStatus: from,
		ToStatus:   to,
		OccurredAt: time.Now().UTC(),
	})

	return updated, nil
}

// PutUser creates or replaces a user record.
func (uc *Workflow) PutUser(ctx context.Context, u *model.User) (*model.User, error) {
	if !u.Role.IsValid() {
		return nil, goerr.Wrap(ErrValidation, "invalid role", goerr.V("role", u.Role))
	}
	return uc.repo.User().Put(ctx, u)
}

// GetUser retrieves a user by ID.
func (uc *Workflow) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	return uc.repo.User().Get(ctx, id)
}

// ListUsers retrieves all users.
func (uc *Workflow) ListUsers(ctx context.Context) ([]*model.User, error) {
	return uc.repo.User().List(ctx)
}

func (uc *Workflow) requireUser(ctx context.Context, id types.UserID) error {
	exists, err := uc.repo.User().Exists(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to check user existence", goerr.V(ActorIDKey, id))
	}
	if !exists {
		return goerr.Wrap(ErrValidation, "assigned user does not exist", goerr.V(ActorIDKey, id))
	}
	return nil
}

// emit sends an audit event without blocking or failing the mutation it
// describes.
func (uc *Workflow) emit(ctx context.Context, ev *model.WorkflowEvent) {
	sink := uc.audit
	async.Dispatch(ctx, func(ctx context.Context) error {
		return sink.Emit(ctx, ev)
	})
}
