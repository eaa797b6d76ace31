package export_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formwizard/pkg/answers"
	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/export"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
)

func TestRows_Golden(t *testing.T) {
	t.Parallel()

	ctrl := florianopolis(t)
	got := export.Rows(ctrl.Schema(), ctrl.Answers(), ctrl.Custom())

	path := filepath.Join("testdata", "florianopolis_rows.golden.json")
	testsupport.WriteGolden(t, path, got)

	var want []export.Row
	if err := json.Unmarshal(testsupport.MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("decode golden: %v", err)
	}
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRows_SchemaFileMatchesCatalog(t *testing.T) {
	t.Parallel()

	form := testsupport.LoadSchema(t, filepath.Join("..", "uischema", "ui", "schema", "biometria.yaml"))
	if got, want := form.FieldCount(), catalog.MustLoad(catalog.FormBiometria).FieldCount(); got != want {
		t.Fatalf("field count = %d, want %d", got, want)
	}

	for _, row := range export.Rows(form, answers.New(), answers.NewCustom()) {
		if row.Selection != export.NotAvailable || row.Custom != export.NotAvailable {
			t.Fatalf("unanswered row should be N/A: %+v", row)
		}
	}
}
