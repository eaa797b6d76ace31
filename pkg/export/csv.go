package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
)

// CSV writes the tabular export as UTF-8 CSV with CRLF line endings.
type CSV struct{}

// NewCSV returns the CSV exporter.
func NewCSV() *CSV { return &CSV{} }

func (*CSV) Name() string      { return "csv" }
func (*CSV) Extension() string { return ".csv" }

// Export renders the rows. A schema without fields yields ErrNoData.
func (c *CSV) Export(ctx context.Context, in Input) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	in = in.normalised()
	rows := Rows(in.Schema, in.Answers, in.Custom)
	if len(rows) == 0 {
		return Artifact{}, ErrNoData
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write(TabularHeader); err != nil {
		return Artifact{}, fmt.Errorf("export: csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row.Strings()); err != nil {
			return Artifact{}, fmt.Errorf("export: csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Artifact{}, fmt.Errorf("export: csv flush: %w", err)
	}

	return Artifact{
		Filename:    safeFilename(fmt.Sprintf("diagnostico_biometria_%s%s", campusName(in.Answers), c.Extension())),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}
