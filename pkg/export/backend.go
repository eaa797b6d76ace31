package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Converter turns an HTML document into the bytes of another format. It
// stands in for an external HTML-to-document service.
type Converter interface {
	Convert(ctx context.Context, html []byte) ([]byte, error)
}

// ConverterFunc adapts a function into a Converter.
type ConverterFunc func(ctx context.Context, html []byte) ([]byte, error)

// Convert delegates to the underlying function.
func (fn ConverterFunc) Convert(ctx context.Context, html []byte) ([]byte, error) {
	return fn(ctx, html)
}

// Saver persists an artifact and returns where it ended up.
type Saver interface {
	Save(ctx context.Context, artifact Artifact) (string, error)
}

// SaverFunc adapts a function into a Saver.
type SaverFunc func(ctx context.Context, artifact Artifact) (string, error)

// Save delegates to the underlying function.
func (fn SaverFunc) Save(ctx context.Context, artifact Artifact) (string, error) {
	return fn(ctx, artifact)
}

// FileSaver writes artifacts into Dir. Files are written to a temporary name
// and renamed, so a failed save never leaves a partial file behind.
type FileSaver struct {
	Dir string
}

// NewFileSaver returns a saver writing into dir ("." when empty).
func NewFileSaver(dir string) *FileSaver {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return &FileSaver{Dir: dir}
}

// Save writes the artifact and returns its path.
func (s *FileSaver) Save(ctx context.Context, artifact Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := safeFilename(filepath.Base(artifact.Filename))
	if name == "" || name == "." {
		return "", eris.New("export: artifact filename is required")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "export: create dir %s", s.Dir)
	}

	tmp, err := os.CreateTemp(s.Dir, ".formwizard-*")
	if err != nil {
		return "", eris.Wrap(err, "export: create temp file")
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(artifact.Data); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", eris.Wrapf(err, "export: write %s", name)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", eris.Wrapf(err, "export: close %s", name)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return "", eris.Wrapf(err, "export: chmod %s", name)
	}

	target := filepath.Join(s.Dir, name)
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return "", eris.Wrapf(err, "export: move %s into place", name)
	}
	return target, nil
}
