package audit

import (
	"context"
	"sync"

	"github.com/newsdesk-lab/copydesk/pkg/domain/interfaces"
	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/utils/logging"
)

// Logger is an AuditSink that writes events to the structured log. The
// engine treats audit emission as best-effort; persisting the trail is
// the log collector's job.
type Logger struct{}

var _ interfaces.AuditSink = &Logger{}

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Emit(ctx context.Context, ev *model.WorkflowEvent) error {
	logging.From(ctx).Info("audit",
		"kind", ev.Kind,
		"story_id", ev.StoryID,
		"revision_id", ev.RevisionID,
		"actor_id", ev.ActorID,
		"actor_role", ev.ActorRole,
		"from_status", ev.FromStatus,
		"to_status", ev.ToStatus,
		"reason", ev.Reason,
		"occurred_at", ev.OccurredAt,
	)
	return nil
}

// Memory is an AuditSink that records events in memory, for tests.
type Memory struct {
	mu     sync.Mutex
	events []*model.WorkflowEvent
}

var _ interfaces.AuditSink = &Memory{}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Emit(ctx context.Context, ev *model.WorkflowEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cloned := *ev
	m.events = append(m.events, &cloned)
	return nil
}

// Events returns a snapshot of the recorded events.
func (m *Memory) Events() []*model.WorkflowEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*model.WorkflowEvent, len(m.events))
	copy(result, m.events)
	return result
}
