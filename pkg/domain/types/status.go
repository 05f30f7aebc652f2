package types

import "fmt"

// StoryStatus represents the fine-grained pipeline state of a story.
// This is the canonical state model; StoryStage is a projection of it.
type StoryStatus string

const (
	StoryStatusDraft              StoryStatus = "DRAFT"
	StoryStatusInReview           StoryStatus = "IN_REVIEW"
	StoryStatusNeedsRevision      StoryStatus = "NEEDS_REVISION"
	StoryStatusPendingApproval    StoryStatus = "PENDING_APPROVAL"
	StoryStatusApproved           StoryStatus = "APPROVED"
	StoryStatusPendingTranslation StoryStatus = "PENDING_TRANSLATION"
	StoryStatusReadyToPublish     StoryStatus = "READY_TO_PUBLISH"
	StoryStatusPublished          StoryStatus = "PUBLISHED"
	StoryStatusArchived           StoryStatus = "ARCHIVED"
)

// AllStoryStatuses returns all valid story statuses
func AllStoryStatuses() []StoryStatus {
	return []StoryStatus{
		StoryStatusDraft,
		StoryStatusInReview,
		StoryStatusNeedsRevision,
		StoryStatusPendingApproval,
		StoryStatusApproved,
		StoryStatusPendingTranslation,
		StoryStatusReadyToPublish,
		StoryStatusPublished,
		StoryStatusArchived,
	}
}

// IsValid checks if the story status is valid
func (s StoryStatus) IsValid() bool {
	switch s {
	case StoryStatusDraft,
		StoryStatusInReview,
		StoryStatusNeedsRevision,
		StoryStatusPendingApproval,
		StoryStatusApproved,
		StoryStatusPendingTranslation,
		StoryStatusReadyToPublish,
		StoryStatusPublished,
		StoryStatusArchived:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as StoryStatusDraft.
func (s StoryStatus) Normalize() StoryStatus {
	if s == "" {
		return StoryStatusDraft
	}
	return s
}

// IsLocked reports whether the status locks the story against editing by
// anyone but the matching assignee or an EDITOR+ override.
func (s StoryStatus) IsLocked() bool {
	switch s {
	case StoryStatusInReview,
		StoryStatusPendingApproval,
		StoryStatusApproved,
		StoryStatusPendingTranslation,
		StoryStatusReadyToPublish,
		StoryStatusPublished:
		return true
	default:
		return false
	}
}

// IsRevisable reports whether a revision request may be opened against
// the status.
func (s StoryStatus) IsRevisable() bool {
	switch s {
	case StoryStatusInReview,
		StoryStatusPendingApproval,
		StoryStatusApproved,
		StoryStatusPendingTranslation,
		StoryStatusReadyToPublish:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status is terminal for non-EDITOR roles.
func (s StoryStatus) IsTerminal() bool {
	return s == StoryStatusPublished || s == StoryStatusArchived
}

// String returns the string representation of the story status
func (s StoryStatus) String() string {
	return string(s)
}

// ParseStoryStatus parses a string into a StoryStatus
func ParseStoryStatus(s string) (StoryStatus, error) {
	status := StoryStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid story status: %s", s)
	}
	return status, nil
}
