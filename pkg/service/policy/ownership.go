package policy

import (
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// CanEdit decides whether the acting user may edit a story in the given
// status. Rules apply in priority order:
//
//  1. Translations are only editable by their author-of-record. The role
//     has zero influence here; no elevation bypasses this.
//  2. Locked statuses deny everyone except the assignee matching that
//     exact status (when role-eligible) and EDITOR+.
//  3. NEEDS_REVISION is author-only.
//  4. DRAFT is editable by the author, and by SUB_EDITOR+ for
//     non-translations.
//  5. Everything else is denied.
func CanEdit(role types.Role, authorID, actorID types.UserID, status types.StoryStatus, reviewerID, approverID types.UserID, isTranslation bool) bool {
	if actorID.IsEmpty() {
		return false
	}

	if isTranslation {
		return actorID == authorID
	}

	if !role.IsValid() {
		return false
	}

	status = status.Normalize()

	if status.IsLocked() {
		if role.IsEditorOrAbove() {
			return true
		}
		switch status {
		case types.StoryStatusInReview:
			return actorID == reviewerID && role.CanReview()
		case types.StoryStatusPendingApproval,
			types.StoryStatusApproved,
			types.StoryStatusPendingTranslation,
			types.StoryStatusReadyToPublish:
			return actorID == approverID && role.CanApprove()
		default:
			return false
		}
	}

	switch status {
	case types.StoryStatusNeedsRevision:
		return actorID == authorID
	case types.StoryStatusDraft:
		return actorID == authorID || role.CanApprove()
	default:
		return false
	}
}

// CanRequestRevision decides whether the acting user may open a revision
// request against a story in the given status. True when the actor is the
// assigned reviewer (reviewer-eligible role) of a story under review, the
// assigned approver (approver-eligible role) of a story in the approval
// pipeline, or holds EDITOR+ on any revisable status.
func CanRequestRevision(role types.Role, status types.StoryStatus, reviewerID, approverID, actorID types.UserID) bool {
	if !role.IsValid() || actorID.IsEmpty() {
		return false
	}

	status = status.Normalize()
	if !status.IsRevisable() {
		return false
	}

	if role.IsEditorOrAbove() {
		return true
	}

	switch status {
	case types.StoryStatusInReview:
		return actorID == reviewerID && role.CanReview()
	case types.StoryStatusPendingApproval,
		types.StoryStatusApproved,
		types.StoryStatusPendingTranslation,
		types.StoryStatusReadyToPublish:
		return actorID == approverID && role.CanApprove()
	default:
		return false
	}
}
