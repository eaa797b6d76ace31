package formwizard

import (
	"io/fs"

	"github.com/goliatone/go-formwizard/pkg/export"
	"github.com/goliatone/go-formwizard/pkg/uischema"
)

// EmbeddedTemplates exposes the built-in document templates so callers can
// reuse or extend them without importing the export package directly.
func EmbeddedTemplates() fs.FS {
	return export.TemplatesFS()
}

// EmbeddedSchemas exposes the built-in wizard definitions.
func EmbeddedSchemas() fs.FS {
	return uischema.EmbeddedFS()
}
