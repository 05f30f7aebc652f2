package policy

import (
	"sort"

	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// Grant adds actions on a resource kind to a role. Grants only widen the
// table; nothing can revoke a default capability.
type Grant struct {
	Role    types.Role
	Kind    types.ResourceKind
	Actions []types.Action
}

// CapabilityTable is the static role -> resource kind -> action lookup
// used as the coarse first gate before any state-specific check. It is
// immutable after construction.
type CapabilityTable struct {
	allowed map[types.Role]map[types.ResourceKind]map[types.Action]bool
}

// NewCapabilityTable builds the default table extended by the given
// grants.
func NewCapabilityTable(grants ...Grant) *CapabilityTable {
	t := &CapabilityTable{
		allowed: make(map[types.Role]map[types.ResourceKind]map[types.Action]bool),
	}

	crud := []types.Action{types.ActionCreate, types.ActionRead, types.ActionUpdate, types.ActionDelete}

	t.grant(types.RoleIntern, types.ResourceStory, types.ActionCreate, types.ActionRead, types.ActionUpdate)
	t.grant(types.RoleIntern, types.ResourceComment, types.ActionCreate, types.ActionRead)
	t.grant(types.RoleIntern, types.ResourceCategory, types.ActionRead)
	t.grant(types.RoleIntern, types.ResourceTag, types.ActionRead)
	t.grant(types.RoleIntern, types.ResourceTranslation, types.ActionRead)
	t.grant(types.RoleIntern, types.ResourceShow, types.ActionRead)

	t.copyRole(types.RoleIntern, types.RoleJournalist)
	t.grant(types.RoleJournalist, types.ResourceComment, types.ActionUpdate)
	t.grant(types.RoleJournalist, types.ResourceTag, types.ActionCreate)
	t.grant(types.RoleJournalist, types.ResourceTranslation, types.ActionCreate, types.ActionUpdate)

	t.grant(types.RoleSubEditor, types.ResourceStory, crud...)
	t.grant(types.RoleSubEditor, types.ResourceComment, crud...)
	t.grant(types.RoleSubEditor, types.ResourceCategory, types.ActionCreate, types.ActionRead, types.ActionUpdate)
	t.grant(types.RoleSubEditor, types.ResourceTag, crud...)
	t.grant(types.RoleSubEditor, types.ResourceTranslation, types.ActionCreate, types.ActionRead, types.ActionUpdate, types.ActionApprove)
	t.grant(types.RoleSubEditor, types.ResourceShow, types.ActionCreate, types.ActionRead, types.ActionUpdate)

	t.copyRole(types.RoleSubEditor, types.RoleEditor)
	t.grant(types.RoleEditor, types.ResourceCategory, types.ActionDelete)
	t.grant(types.RoleEditor, types.ResourceShow, types.ActionDelete)
	t.grant(types.RoleEditor, types.ResourceTranslation, types.ActionDelete)

	for _, role := range []types.Role{types.RoleAdmin, types.RoleSuperAdmin} {
		for _, kind := range types.AllResourceKinds() {
			t.grant(role, kind, types.AllActions()...)
		}
	}

	for _, g := range grants {
		if !g.Role.IsValid() || !g.Kind.IsValid() {
			continue
		}
		t.grant(g.Role, g.Kind, g.Actions...)
	}

	return t
}

func (t *CapabilityTable) grant(role types.Role, kind types.ResourceKind, actions ...types.Action) {
	byKind, ok := t.allowed[role]
	if !ok {
		byKind = make(map[types.ResourceKind]map[types.Action]bool)
		t.allowed[role] = byKind
	}
	byAction, ok := byKind[kind]
	if !ok {
		byAction = make(map[types.Action]bool)
		byKind[kind] = byAction
	}
	for _, a := range actions {
		if a.IsValid() {
			byAction[a] = true
		}
	}
}

func (t *CapabilityTable) copyRole(from, to types.Role) {
	for kind, byAction := range t.allowed[from] {
		for a := range byAction {
			t.grant(to, kind, a)
		}
	}
}

// Allows reports whether the role holds the action on the resource kind.
// An unknown role or action always denies.
func (t *CapabilityTable) Allows(role types.Role, kind types.ResourceKind, action types.Action) bool {
	if !role.IsValid() {
		return false
	}
	byKind, ok := t.allowed[role]
	if !ok {
		return false
	}
	byAction, ok := byKind[kind]
	if !ok {
		return false
	}
	return byAction[action]
}

// Actions returns the actions the role holds on the resource kind, in a
// stable order. Used by the policy introspection surfaces.
func (t *CapabilityTable) Actions(role types.Role, kind types.ResourceKind) []types.Action {
	byKind, ok := t.allowed[role]
	if !ok {
		return nil
	}
	byAction, ok := byKind[kind]
	if !ok {
		return nil
	}
	actions := make([]types.Action, 0, len(byAction))
	for a := range byAction {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}
