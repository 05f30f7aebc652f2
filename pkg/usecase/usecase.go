package usecase

import (
	"github.com/newsdesk-lab/copydesk/pkg/domain/interfaces"
	"github.com/newsdesk-lab/copydesk/pkg/service/audit"
	"github.com/newsdesk-lab/copydesk/pkg/service/policy"
)

// Workflow is the single entry point callers use: permission checks,
// transition queries and the revision sub-workflow. Internal components
// (capability table, transition matrix, ownership rules) are not part of
// the public contract, so the policy can be revised without breaking
// callers.
type Workflow struct {
	repo   interfaces.Repository
	engine *policy.Engine
	audit  interfaces.AuditSink
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithEngine injects a policy engine, typically one built from the
// policy configuration file.
func WithEngine(engine *policy.Engine) Option {
	return func(uc *Workflow) {
		uc.engine = engine
	}
}

// WithAuditSink injects the audit event sink.
func WithAuditSink(sink interfaces.AuditSink) Option {
	return func(uc *Workflow) {
		uc.audit = sink
	}
}

// New creates a Workflow facade over the repository with the default
// policy engine and a log-backed audit sink.
func New(repo interfaces.Repository, opts ...Option) *Workflow {
	uc := &Workflow{
		repo:   repo,
		engine: policy.New(),
		audit:  audit.NewLogger(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Engine exposes the policy engine for read-only introspection (the
// matrix CLI command and the policy HTTP endpoints).
func (uc *Workflow) Engine() *policy.Engine {
	return uc.engine
}
