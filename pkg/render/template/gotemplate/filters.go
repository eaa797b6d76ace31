package gotemplate

import (
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formwizard/pkg/report"
)

// DateLayout is the pt-BR short date format used in generated documents.
const DateLayout = "02/01/2006"

func registerDefaultFilters() {
	defaults := map[string]pongo2.FilterFunction{
		"trim":    filterTrim,
		"section": filterSection,
		"ptdate":  filterPTDate,
	}
	for name, fn := range defaults {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterSection marks report section markup as safe after passing it through
// the section allow-list.
func filterSection(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(report.Sanitize(in.String())), nil
}

// filterPTDate formats a time.Time (or RFC 3339 string) as dd/mm/yyyy.
func filterPTDate(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	switch v := in.Interface().(type) {
	case time.Time:
		return pongo2.AsValue(v.Format(DateLayout)), nil
	case string:
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			return pongo2.AsValue(ts.Format(DateLayout)), nil
		}
		return pongo2.AsValue(v), nil
	default:
		return pongo2.AsValue(in.String()), nil
	}
}
