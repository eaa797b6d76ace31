package export

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger attaches a logger.
func WithDispatcherLogger(logger *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dispatcher runs an exporter and hands the artifact to a Saver. Failures
// abort the export only; callers may retry immediately.
type Dispatcher struct {
	saver  Saver
	logger *zap.Logger
}

// NewDispatcher builds a dispatcher around saver.
func NewDispatcher(saver Saver, options ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{saver: saver, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Save exports in and persists the artifact, returning the saved location.
// A missing saver is reported before any export work happens.
func (d *Dispatcher) Save(ctx context.Context, exporter Exporter, in Input) (string, error) {
	if d == nil || d.saver == nil {
		return "", fmt.Errorf("%w: no file saver", ErrBackendUnavailable)
	}
	if exporter == nil {
		return "", fmt.Errorf("export: exporter is required")
	}

	artifact, err := exporter.Export(ctx, in)
	if err != nil {
		d.logger.Warn("export failed", zap.String("format", exporter.Name()), zap.Error(err))
		return "", err
	}

	location, err := d.saver.Save(ctx, artifact)
	if err != nil {
		d.logger.Warn("save failed",
			zap.String("format", exporter.Name()),
			zap.String("file", artifact.Filename),
			zap.Error(err),
		)
		return "", fmt.Errorf("export: save %s: %w", artifact.Filename, err)
	}

	d.logger.Info("export saved",
		zap.String("format", exporter.Name()),
		zap.String("location", location),
		zap.Int("bytes", len(artifact.Data)),
	)
	return location, nil
}
