package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tealeg/xlsx/v2"
)

// XLSXSheet is the worksheet name of the spreadsheet export.
const XLSXSheet = "Diagnóstico"

// XLSX writes the tabular export as a single-sheet workbook.
type XLSX struct{}

// NewXLSX returns the spreadsheet exporter.
func NewXLSX() *XLSX { return &XLSX{} }

func (*XLSX) Name() string      { return "xlsx" }
func (*XLSX) Extension() string { return ".xlsx" }

// Export renders the same rows as the CSV exporter.
func (x *XLSX) Export(ctx context.Context, in Input) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	in = in.normalised()
	rows := Rows(in.Schema, in.Answers, in.Custom)
	if len(rows) == 0 {
		return Artifact{}, ErrNoData
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(XLSXSheet)
	if err != nil {
		return Artifact{}, fmt.Errorf("export: xlsx sheet: %w", err)
	}
	appendRow(sheet, TabularHeader)
	for _, row := range rows {
		appendRow(sheet, row.Strings())
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return Artifact{}, fmt.Errorf("export: xlsx write: %w", err)
	}
	return Artifact{
		Filename:    safeFilename(fmt.Sprintf("diagnostico_biometria_%s%s", campusName(in.Answers), x.Extension())),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func appendRow(sheet *xlsx.Sheet, cells []string) {
	row := sheet.AddRow()
	for _, value := range cells {
		row.AddCell().SetString(value)
	}
}
