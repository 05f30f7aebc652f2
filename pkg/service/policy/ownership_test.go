package policy_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
	"github.com/newsdesk-lab/copydesk/pkg/service/policy"
)

const (
	author   = types.UserID("u-author")
	reviewer = types.UserID("u-reviewer")
	approver = types.UserID("u-approver")
	stranger = types.UserID("u-stranger")
)

func TestCanEdit_DraftAndNeedsRevision(t *testing.T) {
	tests := []struct {
		name    string
		role    types.Role
		actorID types.UserID
		status  types.StoryStatus
		want    bool
	}{
		{
			name:    "author edits own draft",
			role:    types.RoleIntern,
			actorID: author,
			status:  types.StoryStatusDraft,
			want:    true,
		},
		{
			name:    "peer journalist cannot edit another author's draft",
			role:    types.RoleJournalist,
			actorID: stranger,
			status:  types.StoryStatusDraft,
			want:    false,
		},
		{
			name:    "sub editor edits any draft",
			role:    types.RoleSubEditor,
			actorID: stranger,
			status:  types.StoryStatusDraft,
			want:    true,
		},
		{
			name:    "author reworks after revision request",
			role:    types.RoleJournalist,
			actorID: author,
			status:  types.StoryStatusNeedsRevision,
			want:    true,
		},
		{
			name:    "sub editor cannot edit NEEDS_REVISION of someone else",
			role:    types.RoleSubEditor,
			actorID: stranger,
			status:  types.StoryStatusNeedsRevision,
			want:    false,
		},
		{
			name:    "editor cannot edit NEEDS_REVISION of someone else",
			role:    types.RoleEditor,
			actorID: stranger,
			status:  types.StoryStatusNeedsRevision,
			want:    false,
		},
		{
			name:    "empty status is treated as draft",
			role:    types.RoleIntern,
			actorID: author,
			status:  types.StoryStatus(""),
			want:    true,
		},
		{
			name:    "empty actor always denied",
			role:    types.RoleAdmin,
			actorID: "",
			status:  types.StoryStatusDraft,
			want:    false,
		},
		{
			name:    "invalid role always denied",
			role:    types.Role("MANAGER"),
			actorID: author,
			status:  types.StoryStatusDraft,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.CanEdit(tt.role, author, tt.actorID, tt.status, "", "", false)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestCanEdit_LockedStatuses(t *testing.T) {
	tests := []struct {
		name    string
		role    types.Role
		actorID types.UserID
		status  types.StoryStatus
		want    bool
	}{
		{
			name:    "author locked out while under review",
			role:    types.RoleJournalist,
			actorID: author,
			status:  types.StoryStatusInReview,
			want:    false,
		},
		{
			name:    "assigned reviewer edits under review",
			role:    types.RoleJournalist,
			actorID: reviewer,
			status:  types.StoryStatusInReview,
			want:    true,
		},
		{
			name:    "assigned reviewer with intern role stays locked out",
			role:    types.RoleIntern,
			actorID: reviewer,
			status:  types.StoryStatusInReview,
			want:    false,
		},
		{
			name:    "assigned approver edits pending approval",
			role:    types.RoleSubEditor,
			actorID: approver,
			status:  types.StoryStatusPendingApproval,
			want:    true,
		},
		{
			name:    "approver assignment does not open the review lock",
			role:    types.RoleSubEditor,
			actorID: approver,
			status:  types.StoryStatusInReview,
			want:    false,
		},
		{
			name:    "reviewer assignment does not open the approval lock",
			role:    types.RoleJournalist,
			actorID: reviewer,
			status:  types.StoryStatusPendingApproval,
			want:    false,
		},
		{
			name:    "editor overrides any lock",
			role:    types.RoleEditor,
			actorID: stranger,
			status:  types.StoryStatusPublished,
			want:    true,
		},
		{
			name:    "admin overrides any lock",
			role:    types.RoleAdmin,
			actorID: stranger,
			status:  types.StoryStatusReadyToPublish,
			want:    true,
		},
		{
			name:    "sub editor without assignment locked out of published",
			role:    types.RoleSubEditor,
			actorID: stranger,
			status:  types.StoryStatusPublished,
			want:    false,
		},
		{
			name:    "assigned approver edits approved story",
			role:    types.RoleSubEditor,
			actorID: approver,
			status:  types.StoryStatusApproved,
			want:    true,
		},
		{
			name:    "assigned approver edits pending translation",
			role:    types.RoleSubEditor,
			actorID: approver,
			status:  types.StoryStatusPendingTranslation,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.CanEdit(tt.role, author, tt.actorID, tt.status, reviewer, approver, false)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

// Translations are author-only in every state for every role; elevation
// does not bypass the rule.
func TestCanEdit_TranslationOverride(t *testing.T) {
	for _, role := range types.AllRoles() {
		for _, status := range types.AllStoryStatuses() {
			gt.B(t, policy.CanEdit(role, author, author, status, reviewer, approver, true)).True()
			gt.B(t, policy.CanEdit(role, author, stranger, status, reviewer, approver, true)).False()
		}
	}

	t.Run("author with unknown role still edits own translation", func(t *testing.T) {
		gt.B(t, policy.CanEdit(types.Role(""), author, author, types.StoryStatusDraft, "", "", true)).True()
	})

	t.Run("empty actor never edits a translation", func(t *testing.T) {
		gt.B(t, policy.CanEdit(types.RoleAdmin, "", "", types.StoryStatusDraft, "", "", true)).False()
	})
}

func TestCanRequestRevision(t *testing.T) {
	tests := []struct {
		name    string
		role    types.Role
		status  types.StoryStatus
		actorID types.UserID
		want    bool
	}{
		{
			name:    "assigned reviewer on story under review",
			role:    types.RoleJournalist,
			status:  types.StoryStatusInReview,
			actorID: reviewer,
			want:    true,
		},
		{
			name:    "unassigned journalist cannot request",
			role:    types.RoleJournalist,
			status:  types.StoryStatusInReview,
			actorID: stranger,
			want:    false,
		},
		{
			name:    "assigned reviewer with intern role cannot request",
			role:    types.RoleIntern,
			status:  types.StoryStatusInReview,
			actorID: reviewer,
			want:    false,
		},
		{
			name:    "assigned approver on pending approval",
			role:    types.RoleSubEditor,
			status:  types.StoryStatusPendingApproval,
			actorID: approver,
			want:    true,
		},
		{
			name:    "assigned approver on ready to publish",
			role:    types.RoleSubEditor,
			status:  types.StoryStatusReadyToPublish,
			actorID: approver,
			want:    true,
		},
		{
			name:    "approver assignment does not cover review state",
			role:    types.RoleSubEditor,
			status:  types.StoryStatusInReview,
			actorID: approver,
			want:    false,
		},
		{
			name:    "editor requests without any assignment",
			role:    types.RoleEditor,
			status:  types.StoryStatusApproved,
			actorID: stranger,
			want:    true,
		},
		{
			name:    "draft is not revisable even for editor",
			role:    types.RoleEditor,
			status:  types.StoryStatusDraft,
			actorID: stranger,
			want:    false,
		},
		{
			name:    "published is not revisable even for admin",
			role:    types.RoleAdmin,
			status:  types.StoryStatusPublished,
			actorID: stranger,
			want:    false,
		},
		{
			name:    "invalid role never requests",
			role:    types.Role("MANAGER"),
			status:  types.StoryStatusInReview,
			actorID: reviewer,
			want:    false,
		},
		{
			name:    "empty actor never requests",
			role:    types.RoleEditor,
			status:  types.StoryStatusInReview,
			actorID: "",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.CanRequestRevision(tt.role, tt.status, reviewer, approver, tt.actorID)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestEngine_Options(t *testing.T) {
	t.Run("default reason length", func(t *testing.T) {
		e := policy.New()
		gt.Value(t, e.MinReasonLength()).Equal(policy.DefaultMinReasonLength)
	})

	t.Run("override reason length", func(t *testing.T) {
		e := policy.New(policy.WithMinReasonLength(25))
		gt.Value(t, e.MinReasonLength()).Equal(25)
	})

	t.Run("non-positive override ignored", func(t *testing.T) {
		e := policy.New(policy.WithMinReasonLength(0))
		gt.Value(t, e.MinReasonLength()).Equal(policy.DefaultMinReasonLength)
	})

	t.Run("grants reach the capability gate", func(t *testing.T) {
		e := policy.New(policy.WithGrants(policy.Grant{
			Role:    types.RoleIntern,
			Kind:    types.ResourceTag,
			Actions: []types.Action{types.ActionCreate},
		}))
		gt.B(t, e.HasPermission(types.RoleIntern, types.ResourceTag, types.ActionCreate)).True()
		gt.B(t, policy.New().HasPermission(types.RoleIntern, types.ResourceTag, types.ActionCreate)).False()
	})
}
