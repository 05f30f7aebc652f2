package policy_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
	"github.com/newsdesk-lab/copydesk/pkg/service/policy"
)

func TestCapabilityTable_Defaults(t *testing.T) {
	table := policy.NewCapabilityTable()

	tests := []struct {
		name   string
		role   types.Role
		kind   types.ResourceKind
		action types.Action
		want   bool
	}{
		{
			name:   "intern creates stories",
			role:   types.RoleIntern,
			kind:   types.ResourceStory,
			action: types.ActionCreate,
			want:   true,
		},
		{
			name:   "intern cannot delete stories",
			role:   types.RoleIntern,
			kind:   types.ResourceStory,
			action: types.ActionDelete,
			want:   false,
		},
		{
			name:   "intern cannot create translations",
			role:   types.RoleIntern,
			kind:   types.ResourceTranslation,
			action: types.ActionCreate,
			want:   false,
		},
		{
			name:   "journalist creates translations",
			role:   types.RoleJournalist,
			kind:   types.ResourceTranslation,
			action: types.ActionCreate,
			want:   true,
		},
		{
			name:   "journalist cannot approve translations",
			role:   types.RoleJournalist,
			kind:   types.ResourceTranslation,
			action: types.ActionApprove,
			want:   false,
		},
		{
			name:   "sub editor approves translations",
			role:   types.RoleSubEditor,
			kind:   types.ResourceTranslation,
			action: types.ActionApprove,
			want:   true,
		},
		{
			name:   "sub editor deletes stories",
			role:   types.RoleSubEditor,
			kind:   types.ResourceStory,
			action: types.ActionDelete,
			want:   true,
		},
		{
			name:   "sub editor cannot delete categories",
			role:   types.RoleSubEditor,
			kind:   types.ResourceCategory,
			action: types.ActionDelete,
			want:   false,
		},
		{
			name:   "editor deletes categories",
			role:   types.RoleEditor,
			kind:   types.ResourceCategory,
			action: types.ActionDelete,
			want:   true,
		},
		{
			name:   "unknown role denies",
			role:   types.Role("MANAGER"),
			kind:   types.ResourceStory,
			action: types.ActionRead,
			want:   false,
		},
		{
			name:   "empty role denies",
			role:   types.Role(""),
			kind:   types.ResourceStory,
			action: types.ActionRead,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, table.Allows(tt.role, tt.kind, tt.action)).Equal(tt.want)
		})
	}
}

func TestCapabilityTable_AdminHoldsEverything(t *testing.T) {
	table := policy.NewCapabilityTable()

	for _, role := range []types.Role{types.RoleAdmin, types.RoleSuperAdmin} {
		for _, kind := range types.AllResourceKinds() {
			for _, action := range types.AllActions() {
				gt.B(t, table.Allows(role, kind, action)).True()
			}
		}
	}
}

// Elevation must only widen the table; every capability of the lower role
// carries over to the next.
func TestCapabilityTable_MonotonicElevation(t *testing.T) {
	table := policy.NewCapabilityTable()

	chains := [][2]types.Role{
		{types.RoleIntern, types.RoleJournalist},
		{types.RoleJournalist, types.RoleSubEditor},
		{types.RoleSubEditor, types.RoleEditor},
		{types.RoleEditor, types.RoleAdmin},
		{types.RoleAdmin, types.RoleSuperAdmin},
	}

	for _, pair := range chains {
		lower, higher := pair[0], pair[1]
		for _, kind := range types.AllResourceKinds() {
			for _, action := range table.Actions(lower, kind) {
				if !table.Allows(higher, kind, action) {
					t.Errorf("%s holds %s on %s but %s does not", lower, action, kind, higher)
				}
			}
		}
	}
}

func TestCapabilityTable_GrantsWiden(t *testing.T) {
	table := policy.NewCapabilityTable(policy.Grant{
		Role:    types.RoleJournalist,
		Kind:    types.ResourceCategory,
		Actions: []types.Action{types.ActionCreate},
	})

	gt.B(t, table.Allows(types.RoleJournalist, types.ResourceCategory, types.ActionCreate)).True()

	// Defaults survive the grant.
	gt.B(t, table.Allows(types.RoleJournalist, types.ResourceStory, types.ActionUpdate)).True()
	gt.B(t, table.Allows(types.RoleIntern, types.ResourceCategory, types.ActionCreate)).False()
}

func TestCapabilityTable_InvalidGrantIgnored(t *testing.T) {
	table := policy.NewCapabilityTable(
		policy.Grant{Role: types.Role("MANAGER"), Kind: types.ResourceStory, Actions: []types.Action{types.ActionDelete}},
		policy.Grant{Role: types.RoleIntern, Kind: types.ResourceKind("widget"), Actions: []types.Action{types.ActionDelete}},
		policy.Grant{Role: types.RoleIntern, Kind: types.ResourceStory, Actions: []types.Action{types.Action("explode")}},
	)

	gt.B(t, table.Allows(types.Role("MANAGER"), types.ResourceStory, types.ActionDelete)).False()
	gt.B(t, table.Allows(types.RoleIntern, types.ResourceKind("widget"), types.ActionDelete)).False()
	gt.B(t, table.Allows(types.RoleIntern, types.ResourceStory, types.Action("explode"))).False()
}

func TestCapabilityTable_Actions(t *testing.T) {
	table := policy.NewCapabilityTable()

	actions := table.Actions(types.RoleIntern, types.ResourceStory)
	gt.Array(t, actions).Length(3)
	gt.Value(t, actions).Equal([]types.Action{
		types.ActionCreate, types.ActionRead, types.ActionUpdate,
	})

	gt.Array(t, table.Actions(types.Role("MANAGER"), types.ResourceStory)).Length(0)
}
