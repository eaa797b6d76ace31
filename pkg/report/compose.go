package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formwizard/pkg/answers"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Step and field ids of the biometrics diagnostic the compositor reads.
const (
	StepIntro                  = "intro"
	StepSystemDetails          = "systemDetails"
	StepTechnicalMeasures      = "technicalMeasures"
	StepOrganizationalMeasures = "organizationalMeasures"
	StepConclusion             = "conclusion"

	FieldCampus           = "campusName"
	FieldAmbientes        = "ambientesCobertos"
	FieldDispositivos     = "numeroDispositivos"
	FieldBrands           = "brands"
	FieldInstallationType = "installationType"
	FieldProvider         = "providerName"
	FieldDataLocation     = "dataLocation"
	FieldAuditorias       = "auditorias"
	FieldNivelSeguranca   = "nivelSeguranca"
	FieldMelhorias        = "melhorias"
)

const (
	installLocal        = "local"
	installOutsourced   = "terceirizado"
	sentenceNotAssessed = "As medidas para este controle não foram avaliadas neste momento."
	sentenceHelp        = "O alinhamento sobre este tópico não foi avaliado e foi solicitada ajuda da DTIC."
	sentenceNoTests     = "Nenhum teste de segurança formal, como pentests ou scans de vulnerabilidade, foi realizado para este sistema até o momento, conforme informado."
	sentenceNoAudits    = "Não foram fornecidas informações sobre auditorias e testes de segurança."
	sentenceNoRecs      = "Nenhuma recomendação adicional foi inserida."
)

// Campus returns the selected campus name or "".
func Campus(a schema.Answers) string {
	if a == nil {
		return ""
	}
	return strings.TrimSpace(a.Text(StepIntro, FieldCampus))
}

// Compose builds the report sections from the answers. It never mutates its
// inputs and every missing answer degrades to a placeholder phrase.
func Compose(s schema.Schema, a schema.Answers, custom answers.CustomReader) Sections {
	c := composer{schema: s, answers: a, custom: custom}
	if c.answers == nil {
		c.answers = answers.New()
	}
	if c.custom == nil {
		c.custom = answers.NewCustom()
	}

	var out Sections
	out.Intro = c.intro()
	out.Escopo = c.escopo()
	out.TechnicalMeasures = c.measures(StepTechnicalMeasures, " Adicionalmente, foram implementados os seguintes controles: %s.")
	out.OrganizationalMeasures = c.measures(StepOrganizationalMeasures, " Adicionalmente: %s.")
	out.Audits = c.audits()
	out.HelpTopics = append([]string(nil), c.help...)
	out.Recommendations = c.recommendations()
	out.Conclusion = c.conclusion()
	return out
}

type composer struct {
	schema  schema.Schema
	answers schema.Answers
	custom  answers.CustomReader
	help    []string
}

func (c *composer) field(stepID, fieldID string) schema.Field {
	field, ok := c.schema.Field(stepID, fieldID)
	if !ok {
		return schema.Field{ID: fieldID, Label: fieldID}
	}
	return field
}

func (c *composer) text(stepID, fieldID, fallback string) string {
	value := strings.TrimSpace(c.answers.Text(stepID, fieldID))
	if value == "" {
		return fallback
	}
	return escape(value)
}

// optionTexts resolves the selected keys to display text, dropping custom
// triggers and any option whose text mentions "Outro" or "Outra".
func (c *composer) optionTexts(stepID string, field schema.Field) []string {
	var out []string
	for _, key := range c.answers.Selected(stepID, field.ID) {
		if isOtherOption(field, key) {
			continue
		}
		out = append(out, escape(field.OptionText(key)))
	}
	return out
}

func (c *composer) customEntries(stepID, fieldID string) string {
	entries := c.custom.List(stepID, fieldID)
	escaped := make([]string, 0, len(entries))
	for _, e := range entries {
		escaped = append(escaped, escape(e))
	}
	return strings.Join(escaped, ", ")
}

func isOtherOption(field schema.Field, key string) bool {
	if opt, ok := field.Option(key); ok {
		if opt.CustomTrigger {
			return true
		}
		return strings.Contains(opt.Text, "Outro") || strings.Contains(opt.Text, "Outra")
	}
	return false
}

func (c *composer) intro() string {
	campus := c.text(StepIntro, FieldCampus, Placeholder)
	return fmt.Sprintf("Este relatório detalha as medidas técnicas e organizacionais de segurança implementadas pelo IFSC - Câmpus %s para o tratamento de dados biométricos faciais. Seu objetivo principal é demonstrar a capacidade de prevenir acessos não autorizados, perdas, ou qualquer outra forma de tratamento inadequado, em aderência à Lei nº 13.709/2018 (LGPD).", campus)
}

func (c *composer) listPhrase(stepID, fieldID string) string {
	field := c.field(stepID, fieldID)
	return joinNonEmpty(", ",
		strings.Join(c.optionTexts(stepID, field), ", "),
		c.customEntries(stepID, fieldID),
	)
}

func (c *composer) escopo() string {
	ambientes := orPlaceholder(c.listPhrase(StepIntro, FieldAmbientes))
	devices := c.text(StepIntro, FieldDispositivos, Placeholder)
	brands := orPlaceholder(c.listPhrase(StepSystemDetails, FieldBrands))

	var b strings.Builder
	fmt.Fprintf(&b, "Este relatório abrange as medidas de segurança aplicadas ao sistema de controle de acesso biométrico facial utilizado em %s. O sistema consiste em aproximadamente %s dispositivos.", ambientes, devices)
	fmt.Fprintf(&b, " Os equipamentos são majoritariamente da(s) marca(s): %s.", brands)

	install := c.answers.Text(StepSystemDetails, FieldInstallationType)
	switch install {
	case installLocal:
		b.WriteString(" A infraestrutura da solução é local (On-Premise).")
	case installOutsourced:
		b.WriteString(" A infraestrutura da solução é gerenciada por terceiros (nuvem).")
		provider := c.text(StepSystemDetails, FieldProvider, Placeholder)
		location := c.text(StepSystemDetails, FieldDataLocation, Placeholder)
		fmt.Fprintf(&b, " A solução é fornecida pela empresa %s, com dados armazenados primariamente no seguinte país/região: %s.", provider, location)
	default:
		fmt.Fprintf(&b, " A infraestrutura da solução é %s.", Placeholder)
	}
	return b.String()
}

// measures renders one paragraph per field of a measures step. The unknown
// key yields the not-assessed sentence; needsHelp yields the help sentence
// and files the field label under HelpTopics.
func (c *composer) measures(stepID, customFormat string) string {
	step, ok := c.schema.Step(stepID)
	if !ok {
		return paragraph("", Placeholder)
	}

	var b strings.Builder
	for _, field := range step.Fields {
		label := escape(field.Label)
		selection := c.answers.Selected(stepID, field.ID)
		switch {
		case field.NeedsHelp != nil && contains(selection, field.NeedsHelp.Key):
			b.WriteString(paragraph(label, sentenceHelp))
			c.help = append(c.help, field.Label)
		case field.Unknown != nil && contains(selection, field.Unknown.Key):
			b.WriteString(paragraph(label, sentenceNotAssessed))
		default:
			body := strings.Join(c.optionTexts(stepID, field), " ")
			if custom := c.customEntries(stepID, field.ID); custom != "" {
				body += fmt.Sprintf(customFormat, custom)
			}
			body = strings.TrimSpace(body)
			if body == "" {
				body = Placeholder
			}
			b.WriteString(paragraph(label, body))
		}
	}
	if b.Len() == 0 {
		return paragraph("", Placeholder)
	}
	return b.String()
}

func paragraph(label, body string) string {
	if label == "" {
		return "<p>" + body + "</p>"
	}
	return "<p><strong>" + label + ":</strong> " + body + "</p>"
}

func (c *composer) audits() string {
	field := c.field(StepConclusion, FieldAuditorias)
	selection := c.answers.Selected(StepConclusion, FieldAuditorias)
	if field.Unknown != nil && contains(selection, field.Unknown.Key) {
		return sentenceNoTests
	}

	texts := strings.Join(c.optionTexts(StepConclusion, field), " ")
	custom := c.customEntries(StepConclusion, FieldAuditorias)
	switch {
	case texts != "" && custom != "":
		return fmt.Sprintf("São realizadas as seguintes avaliações de segurança: %s Adicionalmente: %s.", texts, custom)
	case texts != "":
		return "São realizadas as seguintes avaliações de segurança: " + texts
	case custom != "":
		return fmt.Sprintf("São realizadas as seguintes avaliações de segurança: %s.", custom)
	default:
		return sentenceNoAudits
	}
}

func (c *composer) recommendations() string {
	text := escape(c.answers.Text(StepConclusion, FieldMelhorias))
	if len(c.help) > 0 {
		topics := make([]string, 0, len(c.help))
		for _, t := range c.help {
			topics = append(topics, escape(t))
		}
		text += fmt.Sprintf("\n\nRecomenda-se que a DTIC entre em contato com a equipe do câmpus para prestar suporte nos seguintes tópicos: %s.", strings.Join(topics, ", "))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return sentenceNoRecs
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", "<br>")
}

func (c *composer) conclusion() string {
	field := c.field(StepConclusion, FieldNivelSeguranca)
	level := Placeholder
	if key := strings.TrimSpace(c.answers.Text(StepConclusion, FieldNivelSeguranca)); key != "" {
		level = escape(cases.Lower(language.BrazilianPortuguese).String(field.OptionText(key)))
	}
	return fmt.Sprintf("As medidas implementadas demonstram um compromisso com a proteção dos dados biométricos. O sistema atual oferece um nível de segurança percebido como %s, alinhado com os requisitos da LGPD e com um plano de melhoria contínua para mitigar riscos emergentes.", level)
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
