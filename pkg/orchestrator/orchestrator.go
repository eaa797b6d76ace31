package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/export"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/uischema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithExporters injects an exporter registry. When omitted the default
// registry is built with the configured converter.
func WithExporters(registry *export.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithSaver sets where exported artifacts are written. Without a saver every
// export fails with export.ErrBackendUnavailable.
func WithSaver(saver export.Saver) Option {
	return func(o *Orchestrator) {
		o.saver = saver
	}
}

// WithConverter overrides the HTML to document converter used by the default
// docx exporter. Passing nil disables document export.
func WithConverter(converter export.Converter) Option {
	return func(o *Orchestrator) {
		o.converter = converter
		o.converterSpecified = true
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp exports.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithSchemaFS loads forms from fsys instead of the built-in catalog.
// Option tables referenced through optionsFrom still resolve against the
// catalog.
func WithSchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.schemaFS = fsys
	}
}

// Orchestrator creates wizard sessions and exports their answers.
type Orchestrator struct {
	registry           *export.Registry
	saver              export.Saver
	converter          export.Converter
	converterSpecified bool
	logger             *zap.Logger
	now                func() time.Time
	schemaFS           fs.FS
	forms              *uischema.Store
	initialiseErr      error
}

// Session is one wizard run. ID tags the log lines of the run.
type Session struct {
	ID         string
	FormID     string
	Controller *wizard.Controller
}

// New constructs an Orchestrator. Missing dependencies fall back to the
// built-in catalog, the default exporters and the alt-chunk converter.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.schemaFS != nil {
		store, err := uischema.LoadFS(o.schemaFS, uischema.WithLookup(catalog.Lookup))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load schemas: %w", err)
			return
		}
		o.forms = store
	}

	if o.registry == nil {
		converter := export.Converter(export.AltChunkConverter{})
		if o.converterSpecified {
			converter = o.converter
		}
		registry, err := export.NewDefaultRegistry(export.WithConverter(converter))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: build exporters: %w", err)
			return
		}
		o.registry = registry
	}
}

// Forms lists the form ids Start accepts.
func (o *Orchestrator) Forms() []string {
	if o.forms != nil {
		return o.forms.IDs()
	}
	return catalog.Forms()
}

// Formats lists the registered export formats.
func (o *Orchestrator) Formats() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

// Start opens a new session on the form with the given id.
func (o *Orchestrator) Start(formID string) (*Session, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if formID == "" {
		return nil, errors.New("orchestrator: form id is required")
	}

	form, err := o.form(formID)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := o.logger.With(zap.String("session", id), zap.String("form", formID))
	ctrl, err := wizard.New(form, wizard.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: start %q: %w", formID, err)
	}

	logger.Info("wizard session started", zap.Int("steps", ctrl.StepCount()))
	return &Session{ID: id, FormID: formID, Controller: ctrl}, nil
}

// Export renders the session answers in format and saves the result,
// returning the saved location.
func (o *Orchestrator) Export(ctx context.Context, sess *Session, format string) (string, error) {
	if ctx == nil {
		return "", errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := o.initialiseErr; err != nil {
		return "", err
	}
	if sess == nil || sess.Controller == nil {
		return "", errors.New("orchestrator: session is required")
	}

	exporter, err := o.registry.Get(format)
	if err != nil {
		return "", err
	}
	ctrl := sess.Controller
	form := ctrl.Schema()
	if !form.AllowsFormat(exporter.Name()) {
		return "", fmt.Errorf("%w: %q on form %q", export.ErrFormatNotAllowed, exporter.Name(), form.ID)
	}

	logger := o.logger.With(zap.String("session", sess.ID), zap.String("form", sess.FormID))
	dispatcher := export.NewDispatcher(o.saver, export.WithDispatcherLogger(logger))

	return dispatcher.Save(ctx, exporter, export.Input{
		Schema:      form,
		Answers:     ctrl.Answers(),
		Custom:      ctrl.Custom(),
		GeneratedAt: o.now(),
	})
}

// FormatsFor narrows requested to the formats the session's form accepts.
// The dropped names are returned as skipped. When nothing in requested
// applies, the form's own formats are used instead.
func (o *Orchestrator) FormatsFor(sess *Session, requested []string) (formats, skipped []string) {
	if sess == nil || sess.Controller == nil {
		return nil, requested
	}
	form := sess.Controller.Schema()
	for _, format := range requested {
		if form.AllowsFormat(format) {
			formats = append(formats, format)
			continue
		}
		skipped = append(skipped, format)
	}
	if len(formats) == 0 {
		formats = append(formats, form.Formats...)
	}
	return formats, skipped
}

// ExportAll exports every format in order. A failing format does not stop
// the others; the saved locations and the joined errors are returned.
func (o *Orchestrator) ExportAll(ctx context.Context, sess *Session, formats []string) ([]string, error) {
	var (
		saved []string
		errs  []error
	)
	for _, format := range formats {
		location, err := o.Export(ctx, sess, format)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", format, err))
			continue
		}
		saved = append(saved, location)
	}
	return saved, errors.Join(errs...)
}

func (o *Orchestrator) form(id string) (schema.Schema, error) {
	if o.forms != nil {
		form, ok := o.forms.Form(id)
		if !ok {
			return schema.Schema{}, fmt.Errorf("orchestrator: unknown form %q", id)
		}
		return form, nil
	}
	return catalog.Load(id)
}
