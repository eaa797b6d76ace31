package export

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-formwizard/pkg/answers"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

var (
	// ErrNoData is returned instead of producing an empty tabular file.
	ErrNoData = errors.New("export: no data to export")
	// ErrBackendUnavailable is returned when the conversion or save service
	// is missing. No file is written.
	ErrBackendUnavailable = errors.New("export: backend unavailable")
	// ErrUnknownFormat is returned by the registry for unregistered names.
	ErrUnknownFormat = errors.New("export: unknown format")
	// ErrNotHighRisk is returned by the RIPD exporter when the inventoried
	// process is not flagged as high risk.
	ErrNotHighRisk = errors.New("export: process is not high risk")
	// ErrFormatNotAllowed is returned when a form does not list the
	// requested format among its export formats.
	ErrFormatNotAllowed = errors.New("export: format not allowed for this form")
)

// Input is the read-only session state handed to exporters.
type Input struct {
	Schema  schema.Schema
	Answers schema.Answers
	Custom  answers.CustomReader
	// GeneratedAt stamps documents and filenames. Zero means time.Now.
	GeneratedAt time.Time
}

func (in Input) generatedAt() time.Time {
	if in.GeneratedAt.IsZero() {
		return time.Now()
	}
	return in.GeneratedAt
}

func (in Input) normalised() Input {
	if in.Answers == nil {
		in.Answers = answers.New()
	}
	if in.Custom == nil {
		in.Custom = answers.NewCustom()
	}
	return in
}

// Artifact is an exported file kept in memory until a Saver persists it.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Exporter converts session state into an artifact.
type Exporter interface {
	Name() string
	Extension() string
	Export(ctx context.Context, in Input) (Artifact, error)
}
