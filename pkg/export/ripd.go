package export

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/report"
)

// RIPDOption configures the RIPD exporter.
type RIPDOption func(*RIPD)

// WithForce drafts the RIPD even when the process is not flagged as high
// risk.
func WithForce(force bool) RIPDOption {
	return func(r *RIPD) {
		r.force = force
	}
}

// RIPD writes the plain-text data-protection impact report draft for the
// process inventory form.
type RIPD struct {
	force bool
}

// NewRIPD returns the RIPD exporter.
func NewRIPD(options ...RIPDOption) *RIPD {
	r := &RIPD{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (*RIPD) Name() string      { return "ripd" }
func (*RIPD) Extension() string { return ".txt" }

// Export renders the draft. Processes not flagged as high risk return
// ErrNotHighRisk unless forced.
func (r *RIPD) Export(ctx context.Context, in Input) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	in = in.normalised()
	if !r.force && !report.HighRisk(in.Answers) {
		return Artifact{}, ErrNotHighRisk
	}

	process := underscoreSpaces(report.ProcessName(in.Answers))
	if process == "" {
		process = "Processo"
	}
	return Artifact{
		Filename:    safeFilename(fmt.Sprintf("RIPD_Rascunho_%s_%s%s", process, in.generatedAt().Format("2006-01-02"), r.Extension())),
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(report.ComposeRIPD(in.Answers, in.Custom)),
	}, nil
}
