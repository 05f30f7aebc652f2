package policy

import (
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// TransitionMatrix is the role x status -> legal next statuses lookup
// governing all workflow movement. It is defined against the canonical
// status model; stage-level queries are projections. Immutable after
// construction.
type TransitionMatrix struct {
	next map[types.Role]map[types.StoryStatus]map[types.StoryStatus]bool
}

// NewTransitionMatrix builds the editorial transition matrix.
//
// The matrix is composed role by role so that the elevation guarantees
// hold by construction: EDITOR is a strict superset of SUB_EDITOR, and
// ADMIN/SUPERADMIN allow every move.
func NewTransitionMatrix() *TransitionMatrix {
	m := &TransitionMatrix{
		next: make(map[types.Role]map[types.StoryStatus]map[types.StoryStatus]bool),
	}

	// INTERN: submit for peer review and resubmit after revision, nothing
	// else.
	m.allow(types.RoleIntern, types.StoryStatusDraft, types.StoryStatusInReview)
	m.allow(types.RoleIntern, types.StoryStatusNeedsRevision, types.StoryStatusInReview)

	// JOURNALIST: may skip peer review for their own drafts and may
	// review intern work, but never approves or publishes.
	m.allow(types.RoleJournalist, types.StoryStatusDraft,
		types.StoryStatusInReview, types.StoryStatusPendingApproval)
	m.allow(types.RoleJournalist, types.StoryStatusInReview,
		types.StoryStatusNeedsRevision, types.StoryStatusPendingApproval)
	m.allow(types.RoleJournalist, types.StoryStatusNeedsRevision,
		types.StoryStatusInReview, types.StoryStatusPendingApproval)

	// SUB_EDITOR: full approval authority plus reverts to
	// NEEDS_REVISION/DRAFT from every non-terminal state.
	m.copyRole(types.RoleJournalist, types.RoleSubEditor)
	m.allow(types.RoleSubEditor, types.StoryStatusInReview, types.StoryStatusDraft)
	m.allow(types.RoleSubEditor, types.StoryStatusNeedsRevision, types.StoryStatusDraft)
	m.allow(types.RoleSubEditor, types.StoryStatusPendingApproval,
		types.StoryStatusApproved, types.StoryStatusNeedsRevision, types.StoryStatusDraft)
	m.allow(types.RoleSubEditor, types.StoryStatusApproved,
		types.StoryStatusPendingTranslation, types.StoryStatusReadyToPublish,
		types.StoryStatusPublished, types.StoryStatusNeedsRevision, types.StoryStatusDraft)
	m.allow(types.RoleSubEditor, types.StoryStatusPendingTranslation,
		types.StoryStatusReadyToPublish, types.StoryStatusNeedsRevision, types.StoryStatusDraft)
	m.allow(types.RoleSubEditor, types.StoryStatusReadyToPublish,
		types.StoryStatusPublished, types.StoryStatusNeedsRevision, types.StoryStatusDraft)

	// EDITOR: superset of SUB_EDITOR, may skip stages from DRAFT and is
	// the lowest role that can leave the terminal statuses.
	m.copyRole(types.RoleSubEditor, types.RoleEditor)
	for _, to := range types.AllStoryStatuses() {
		if to != types.StoryStatusDraft {
			m.allow(types.RoleEditor, types.StoryStatusDraft, to)
		}
	}
	m.allow(types.RoleEditor, types.StoryStatusPublished,
		types.StoryStatusArchived, types.StoryStatusNeedsRevision, types.StoryStatusDraft)
	m.allow(types.RoleEditor, types.StoryStatusArchived,
		types.StoryStatusDraft, types.StoryStatusPublished)

	// ADMIN/SUPERADMIN: unrestricted.
	for _, role := range []types.Role{types.RoleAdmin, types.RoleSuperAdmin} {
		for _, from := range types.AllStoryStatuses() {
			for _, to := range types.AllStoryStatuses() {
				if from != to {
					m.allow(role, from, to)
				}
			}
		}
	}

	return m
}

func (m *TransitionMatrix) allow(role types.Role, from types.StoryStatus, tos ...types.StoryStatus) {
	byFrom, ok := m.next[role]
	if !ok {
		byFrom = make(map[types.StoryStatus]map[types.StoryStatus]bool)
		m.next[role] = byFrom
	}
	byTo, ok := byFrom[from]
	if !ok {
		byTo = make(map[types.StoryStatus]bool)
		byFrom[from] = byTo
	}
	for _, to := range tos {
		if to != from {
			byTo[to] = true
		}
	}
}

func (m *TransitionMatrix) copyRole(from, to types.Role) {
	for status, byTo := range m.next[from] {
		for next := range byTo {
			m.allow(to, status, next)
		}
	}
}

// CanTransition reports whether the role may move a story from one status
// to another.
func (m *TransitionMatrix) CanTransition(role types.Role, from, to types.StoryStatus) bool {
	if !role.IsValid() || !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	byFrom, ok := m.next[role]
	if !ok {
		return false
	}
	return byFrom[from][to]
}

// LegalNextStatuses returns the statuses the role may move a story to
// from the given status, in canonical enum order. The result never
// contains the current status.
func (m *TransitionMatrix) LegalNextStatuses(role types.Role, from types.StoryStatus) []types.StoryStatus {
	result := []types.StoryStatus{}
	if !role.IsValid() || !from.IsValid() {
		return result
	}
	byTo := m.next[role][from]
	for _, s := range types.AllStoryStatuses() {
		if byTo[s] {
			result = append(result, s)
		}
	}
	return result
}

// CanTransitionStage is the stage-model view of CanTransition: the move
// is legal if any status behind the target stage is reachable from the
// stage's canonical status.
func (m *TransitionMatrix) CanTransitionStage(role types.Role, from, to types.StoryStage) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	for _, stage := range m.LegalNextStages(role, from) {
		if stage == to {
			return true
		}
	}
	return false
}

// LegalNextStages projects LegalNextStatuses onto the stage model,
// deduplicated and excluding the current stage.
func (m *TransitionMatrix) LegalNextStages(role types.Role, from types.StoryStage) []types.StoryStage {
	result := []types.StoryStage{}
	if !role.IsValid() || !from.IsValid() {
		return result
	}
	reachable := make(map[types.StoryStage]bool)
	for _, status := range m.LegalNextStatuses(role, from.Canonical()) {
		reachable[types.StatusToStage(status)] = true
	}
	for _, stage := range types.AllStoryStages() {
		if stage != from && reachable[stage] {
			result = append(result, stage)
		}
	}
	return result
}
