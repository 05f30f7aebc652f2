package types

import "fmt"

// ResourceKind classifies the resources guarded by the capability table.
type ResourceKind string

const (
	ResourceStory       ResourceKind = "story"
	ResourceComment     ResourceKind = "comment"
	ResourceCategory    ResourceKind = "category"
	ResourceTag         ResourceKind = "tag"
	ResourceTranslation ResourceKind = "translation"
	ResourceShow        ResourceKind = "show"
)

// AllResourceKinds returns all valid resource kinds
func AllResourceKinds() []ResourceKind {
	return []ResourceKind{
		ResourceStory,
		ResourceComment,
		ResourceCategory,
		ResourceTag,
		ResourceTranslation,
		ResourceShow,
	}
}

// IsValid checks if the resource kind is valid
func (k ResourceKind) IsValid() bool {
	switch k {
	case ResourceStory,
		ResourceComment,
		ResourceCategory,
		ResourceTag,
		ResourceTranslation,
		ResourceShow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the resource kind
func (k ResourceKind) String() string {
	return string(k)
}

// ParseResourceKind parses a string into a ResourceKind
func ParseResourceKind(s string) (ResourceKind, error) {
	kind := ResourceKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid resource kind: %s", s)
	}
	return kind, nil
}

// Action is a CRUD-like operation on a resource kind. ActionApprove is
// only meaningful for the translation resource.
type Action string

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
)

// AllActions returns all valid actions
func AllActions() []Action {
	return []Action{
		ActionCreate,
		ActionRead,
		ActionUpdate,
		ActionDelete,
		ActionApprove,
	}
}

// IsValid checks if the action is valid
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionApprove:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}

// ParseAction parses a string into an Action
func ParseAction(s string) (Action, error) {
	action := Action(s)
	if !action.IsValid() {
		return "", fmt.Errorf("invalid action: %s", s)
	}
	return action, nil
}
