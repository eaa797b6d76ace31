package formwizard

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
)

// Session aliases orchestrator.Session for callers that only import the
// root package.
type Session = orchestrator.Session

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Forms lists the ids of the built-in wizards.
func Forms() []string {
	return catalog.Forms()
}

// ExportForm is the shortest path from a finished session to saved files: it
// exports every format with the orchestrator built from options.
func ExportForm(ctx context.Context, sess *Session, formats []string, options ...orchestrator.Option) ([]string, error) {
	return orchestrator.New(options...).ExportAll(ctx, sess, formats)
}
