package types

import "fmt"

// StoryStage is the simplified 6-value view of the editorial pipeline.
// It is a pure projection of StoryStatus; the transition matrix is defined
// once against StoryStatus and projected for stage-level callers.
type StoryStage string

const (
	StoryStageDraft                  StoryStage = "DRAFT"
	StoryStageNeedsJournalistReview  StoryStage = "NEEDS_JOURNALIST_REVIEW"
	StoryStageNeedsSubEditorApproval StoryStage = "NEEDS_SUB_EDITOR_APPROVAL"
	StoryStageApproved               StoryStage = "APPROVED"
	StoryStageTranslated             StoryStage = "TRANSLATED"
	StoryStagePublished              StoryStage = "PUBLISHED"
)

// AllStoryStages returns all valid story stages
func AllStoryStages() []StoryStage {
	return []StoryStage{
		StoryStageDraft,
		StoryStageNeedsJournalistReview,
		StoryStageNeedsSubEditorApproval,
		StoryStageApproved,
		StoryStageTranslated,
		StoryStagePublished,
	}
}

// IsValid checks if the story stage is valid
func (s StoryStage) IsValid() bool {
	switch s {
	case StoryStageDraft,
		StoryStageNeedsJournalistReview,
		StoryStageNeedsSubEditorApproval,
		StoryStageApproved,
		StoryStageTranslated,
		StoryStagePublished:
		return true
	default:
		return false
	}
}

// String returns the string representation of the story stage
func (s StoryStage) String() string {
	return string(s)
}

// Canonical returns the canonical StoryStatus for the stage.
// The stage model has no NEEDS_REVISION or ARCHIVED names; those statuses
// only appear when projecting status to stage, never the other way.
func (s StoryStage) Canonical() StoryStatus {
	switch s {
	case StoryStageDraft:
		return StoryStatusDraft
	case StoryStageNeedsJournalistReview:
		return StoryStatusInReview
	case StoryStageNeedsSubEditorApproval:
		return StoryStatusPendingApproval
	case StoryStageApproved:
		return StoryStatusApproved
	case StoryStageTranslated:
		return StoryStatusReadyToPublish
	case StoryStagePublished:
		return StoryStatusPublished
	default:
		return ""
	}
}

// StatusToStage projects a canonical status onto the stage model.
func StatusToStage(s StoryStatus) StoryStage {
	switch s {
	case StoryStatusDraft, StoryStatusNeedsRevision:
		return StoryStageDraft
	case StoryStatusInReview:
		return StoryStageNeedsJournalistReview
	case StoryStatusPendingApproval:
		return StoryStageNeedsSubEditorApproval
	case StoryStatusApproved, StoryStatusPendingTranslation:
		return StoryStageApproved
	case StoryStatusReadyToPublish:
		return StoryStageTranslated
	case StoryStatusPublished, StoryStatusArchived:
		return StoryStagePublished
	default:
		return ""
	}
}

// ParseStoryStage parses a string into a StoryStage
func ParseStoryStage(s string) (StoryStage, error) {
	stage := StoryStage(s)
	if !stage.IsValid() {
		return "", fmt.Errorf("invalid story stage: %s", s)
	}
	return stage, nil
}
