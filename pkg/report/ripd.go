package report

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/answers"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Step and field ids of the process inventory form.
const (
	StepIdentificacao = "identificacao"
	StepDados         = "dados"
	StepConformidade  = "conformidade"
	StepCicloVida     = "cicloVida"
	StepRisco         = "risco"

	FieldNomeProcesso     = "nomeProcesso"
	FieldCompartilhaDados = "compartilhaDados"
	FieldAltoRisco        = "altoRisco"
)

const (
	ripdNotInformed = "Não informado"
	ripdManual      = "[SEÇÃO A SER PREENCHIDA MANUALMENTE PELO DPO E GESTOR DO PROCESSO]"
	ripdRule        = "=========================================================="
	answerYes       = "Sim"
)

// HighRisk reports whether the inventory answers flag the process as high
// risk, which is what makes a RIPD draft necessary.
func HighRisk(a schema.Answers) bool {
	return a != nil && a.Text(StepRisco, FieldAltoRisco) == answerYes
}

// ProcessName returns the inventoried process name or "".
func ProcessName(a schema.Answers) string {
	if a == nil {
		return ""
	}
	return strings.TrimSpace(a.Text(StepIdentificacao, FieldNomeProcesso))
}

// Sharing is one data-sharing recipient of the inventoried process.
type Sharing struct {
	Recipient string
	Purpose   string
}

// ParseSharing reads a custom entry written as "recipient: purpose" (or
// "recipient | purpose").
func ParseSharing(entry string) Sharing {
	entry = strings.TrimSpace(entry)
	for _, sep := range []string{"|", ":"} {
		if idx := strings.Index(entry, sep); idx >= 0 {
			recipient := strings.TrimSpace(entry[:idx])
			purpose := strings.TrimSpace(entry[idx+len(sep):])
			if purpose == "" {
				purpose = ripdNotInformed
			}
			return Sharing{Recipient: recipient, Purpose: purpose}
		}
	}
	return Sharing{Recipient: entry, Purpose: ripdNotInformed}
}

// ComposeRIPD renders the plain-text draft of the data-protection impact
// report (RIPD) from the process inventory answers. Sections six to eight are
// left for the DPO and process owner.
func ComposeRIPD(a schema.Answers, custom answers.CustomReader) string {
	if a == nil {
		a = answers.New()
	}
	if custom == nil {
		custom = answers.NewCustom()
	}

	text := func(step, field string) string {
		if v := strings.TrimSpace(a.Text(step, field)); v != "" {
			return v
		}
		return ripdNotInformed
	}
	list := func(step, field string) string {
		if v := strings.Join(a.Selected(step, field), ", "); v != "" {
			return v
		}
		return ripdNotInformed
	}

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("RELATÓRIO DE IMPACTO À PROTEÇÃO DE DADOS (RIPD) - RASCUNHO")
	line(ripdRule)
	line("")
	line("1. IDENTIFICAÇÃO")
	line("   - Nome do Processo: %s", text(StepIdentificacao, FieldNomeProcesso))
	line("   - Unidade Responsável: %s", text(StepIdentificacao, "unidadeSetor"))
	line("   - Gestor do Processo: %s", text(StepIdentificacao, "gestorProcesso"))
	line("")
	line("2. DESCRIÇÃO DO PROCESSO")
	line("   - Descrição: %s", text(StepIdentificacao, "descricaoProcesso"))
	line("   - Finalidade: %s", text(StepDados, "finalidadeTratamento"))
	line("")
	line("3. DADOS TRATADOS")
	line("   - Categorias de Titulares: %s", list(StepDados, "categoriasTitulares"))
	line("   - Dados Pessoais Coletados: %s", text(StepDados, "dadosPessoaisColetados"))
	line("   - Tratamento de Dados Sensíveis: %s", text(StepDados, "trataDadosSensiveis"))
	if a.Text(StepDados, "trataDadosSensiveis") == answerYes {
		line("   - Categorias de Dados Sensíveis: %s", list(StepDados, "categoriasDadosSensiveis"))
	}
	line("   - Tratamento de Dados de Crianças/Adolescentes: %s", text(StepDados, "trataDadosCriancasAdolescentes"))
	line("")
	line("4. CONFORMIDADE LEGAL")
	line("   - Base Legal: %s", text(StepConformidade, "baseLegal"))
	previsao := strings.TrimSpace(a.Text(StepConformidade, "previsaoLegal"))
	if previsao == "" {
		previsao = "N/A"
	}
	line("   - Previsão Legal Específica: %s", previsao)
	line("")
	line("5. CICLO DE VIDA E SEGURANÇA")
	line("   - Fonte dos Dados: %s", text(StepCicloVida, "fonteDados"))
	line("   - Compartilhamento: %s", text(StepCicloVida, FieldCompartilhaDados))
	if a.Text(StepCicloVida, FieldCompartilhaDados) == answerYes {
		for _, entry := range custom.List(StepCicloVida, FieldCompartilhaDados) {
			s := ParseSharing(entry)
			line("     - Com: %s | Para: %s", s.Recipient, s.Purpose)
		}
	}
	line("   - Tempo de Retenção: %s", text(StepCicloVida, "tempoRetencao"))
	line("   - Medidas de Segurança: %s", text(StepCicloVida, "medidasSeguranca"))
	line("")
	line("6. ANÁLISE DE NECESSIDADE E PROPORCIONALIDADE")
	line("   - %s", ripdManual)
	line("")
	line("7. AVALIAÇÃO DETALHADA DOS RISCOS")
	line("   - %s", ripdManual)
	line("")
	line("8. MEDIDAS PARA MITIGAÇÃO DE RISCOS")
	line("   - %s", ripdManual)
	line("")
	line(ripdRule)
	line("Este documento é um rascunho gerado automaticamente e requer análise e complementação.")
	return b.String()
}
