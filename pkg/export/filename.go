package export

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/report"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// DefaultCampus names files when no campus was selected.
const DefaultCampus = "IFSC"

var (
	unsafeFilenameChars = strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_",
	)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

func campusName(a schema.Answers) string {
	if campus := report.Campus(a); campus != "" {
		return campus
	}
	return DefaultCampus
}

// safeFilename strips path separators and characters rejected by common
// filesystems while keeping accents.
func safeFilename(name string) string {
	return strings.TrimSpace(unsafeFilenameChars.Replace(name))
}

func underscoreSpaces(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), "_")
}
