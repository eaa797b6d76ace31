package export

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded document templates so callers can reuse
// or override them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
