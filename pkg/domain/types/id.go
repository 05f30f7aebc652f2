package types

import "github.com/google/uuid"

// UserID identifies a user. Empty means "nobody", used for cleared
// assignment fields.
type UserID string

func (id UserID) String() string {
	return string(id)
}

// IsEmpty reports whether the ID refers to nobody.
func (id UserID) IsEmpty() bool {
	return id == ""
}

// StoryID identifies a story.
type StoryID string

func (id StoryID) String() string {
	return string(id)
}

// NewStoryID generates a new random story ID.
func NewStoryID() StoryID {
	return StoryID(uuid.NewString())
}

// RevisionID identifies a revision request.
type RevisionID string

func (id RevisionID) String() string {
	return string(id)
}

// NewRevisionID generates a new random revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(uuid.NewString())
}
