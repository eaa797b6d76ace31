package report_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/report"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestComposeRIPD(t *testing.T) {
	t.Parallel()

	ctrl, err := wizard.New(catalog.MustLoad(catalog.FormInventario))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	mustEdit(t, ctrl, "identificacao", "nomeProcesso", "Matrícula de alunos")
	mustEdit(t, ctrl, "dados", "trataDadosSensiveis", "Sim")
	mustEdit(t, ctrl, "dados", "categoriasTitulares", "Alunos")
	mustEdit(t, ctrl, "cicloVida", "compartilhaDados", "Sim")
	if _, err := ctrl.AddCustom("cicloVida", "compartilhaDados", "MEC: censo escolar"); err != nil {
		t.Fatalf("add custom: %v", err)
	}
	mustEdit(t, ctrl, "risco", "altoRisco", "Sim")

	if !report.HighRisk(ctrl.Answers()) {
		t.Fatalf("expected high risk")
	}
	if got := report.ProcessName(ctrl.Answers()); got != "Matrícula de alunos" {
		t.Fatalf("process name: got %q", got)
	}

	text := report.ComposeRIPD(ctrl.Answers(), ctrl.Custom())
	for _, want := range []string{
		"RELATÓRIO DE IMPACTO À PROTEÇÃO DE DADOS (RIPD) - RASCUNHO\n",
		"   - Nome do Processo: Matrícula de alunos\n",
		"   - Unidade Responsável: Não informado\n",
		"   - Categorias de Titulares: Alunos\n",
		"   - Categorias de Dados Sensíveis: Não informado\n",
		"   - Previsão Legal Específica: N/A\n",
		"     - Com: MEC | Para: censo escolar\n",
		"8. MEDIDAS PARA MITIGAÇÃO DE RISCOS\n   - [SEÇÃO A SER PREENCHIDA MANUALMENTE PELO DPO E GESTOR DO PROCESSO]\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("ripd missing %q:\n%s", want, text)
		}
	}
	if got := strings.Count(text, "[SEÇÃO A SER PREENCHIDA MANUALMENTE"); got != 3 {
		t.Fatalf("expected three manual sections, got %d", got)
	}
}

func TestComposeRIPD_EmptyAnswers(t *testing.T) {
	t.Parallel()

	text := report.ComposeRIPD(nil, nil)
	if strings.Contains(text, "Categorias de Dados Sensíveis") {
		t.Fatalf("sensitive categories only appear when flagged")
	}
	if strings.Contains(text, ": \n") {
		t.Fatalf("blank interpolation in draft:\n%s", text)
	}
	if report.HighRisk(nil) {
		t.Fatalf("nil answers are not high risk")
	}
}

func TestParseSharing(t *testing.T) {
	t.Parallel()

	cases := map[string]report.Sharing{
		"MEC: censo":       {Recipient: "MEC", Purpose: "censo"},
		"INEP | avaliação": {Recipient: "INEP", Purpose: "avaliação"},
		"Receita Federal":  {Recipient: "Receita Federal", Purpose: "Não informado"},
	}
	for in, want := range cases {
		if diff := cmp.Diff(want, report.ParseSharing(in)); diff != "" {
			t.Fatalf("parse %q mismatch (-want +got):\n%s", in, diff)
		}
	}
}
