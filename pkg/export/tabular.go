package export

import (
	"strings"

	"github.com/goliatone/go-formwizard/pkg/answers"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// NotAvailable marks absent answers in tabular exports.
const NotAvailable = "N/A"

// TabularHeader is the header row shared by the CSV and XLSX exporters.
var TabularHeader = []string{"Passo", "Campo", "Seleção", "Valores Customizados"}

// Row is one (step, field) line of a tabular export.
type Row struct {
	Step      string
	Field     string
	Selection string
	Custom    string
}

// Strings returns the row cells in header order.
func (r Row) Strings() []string {
	return []string{r.Step, r.Field, r.Selection, r.Custom}
}

// Rows lists every field of every step in schema order, hidden fields
// included. Multi-choice keys and custom entries are joined with ";".
// Multi-choice custom-trigger keys never reach the selection column.
func Rows(s schema.Schema, a schema.Answers, custom answers.CustomReader) []Row {
	var rows []Row
	for _, step := range s.Steps {
		for _, field := range step.Fields {
			rows = append(rows, Row{
				Step:      step.Title,
				Field:     field.Label,
				Selection: joinOrNA(selection(field, a.Selected(step.ID, field.ID))),
				Custom:    joinOrNA(custom.List(step.ID, field.ID)),
			})
		}
	}
	return rows
}

func selection(field schema.Field, keys []string) []string {
	if !field.Kind.IsMultiChoice() || !field.HasCustomTrigger() {
		return keys
	}
	out := keys[:0:0]
	for _, key := range keys {
		if opt, ok := field.Option(key); ok && opt.CustomTrigger {
			continue
		}
		out = append(out, key)
	}
	return out
}

func joinOrNA(values []string) string {
	if len(values) == 0 {
		return NotAvailable
	}
	return strings.Join(values, ";")
}
