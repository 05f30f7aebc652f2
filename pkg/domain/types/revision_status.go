package types

import "fmt"

// RevisionStatus represents the state of a revision request.
// The lifecycle is one-way: OPEN -> RESOLVED.
type RevisionStatus string

const (
	RevisionStatusOpen     RevisionStatus = "OPEN"
	RevisionStatusResolved RevisionStatus = "RESOLVED"
)

// AllRevisionStatuses returns all valid revision statuses
func AllRevisionStatuses() []RevisionStatus {
	return []RevisionStatus{
		RevisionStatusOpen,
		RevisionStatusResolved,
	}
}

// IsValid checks if the revision status is valid
func (s RevisionStatus) IsValid() bool {
	switch s {
	case RevisionStatusOpen, RevisionStatusResolved:
		return true
	default:
		return false
	}
}

// String returns the string representation of the revision status
func (s RevisionStatus) String() string {
	return string(s)
}

// ParseRevisionStatus parses a string into a RevisionStatus
func ParseRevisionStatus(s string) (RevisionStatus, error) {
	status := RevisionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid revision status: %s", s)
	}
	return status, nil
}
