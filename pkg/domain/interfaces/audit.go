package interfaces

import (
	"context"

	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
)

// AuditSink receives workflow audit events. Implementations must tolerate
// being called concurrently; callers treat emission as fire-and-forget.
type AuditSink interface {
	Emit(ctx context.Context, ev *model.WorkflowEvent) error
}
