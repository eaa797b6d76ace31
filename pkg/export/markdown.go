package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/nao1215/markdown"

	"github.com/goliatone/go-formwizard/pkg/report"
)

// Markdown writes the report sections followed by the answers table.
type Markdown struct{}

// NewMarkdown returns the Markdown exporter.
func NewMarkdown() *Markdown { return &Markdown{} }

func (*Markdown) Name() string      { return "markdown" }
func (*Markdown) Extension() string { return ".md" }

// Export renders the summary.
func (m *Markdown) Export(ctx context.Context, in Input) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	in = in.normalised()
	sections := report.Compose(in.Schema, in.Answers, in.Custom)
	campus := campusName(in.Answers)

	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)
	md.H1("Relatório Técnico de Segurança Biométrica")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Propriedade", "Valor"},
		Rows: [][]string{
			{"Câmpus", campus},
			{"Gerado em", in.generatedAt().Format("02/01/2006")},
		},
	})
	md.PlainText("")
	md.Note("Este documento é um rascunho gerado por assistente e deve ser validado por um especialista.")
	md.PlainText("")

	for _, sec := range sections.PlainSections() {
		md.H2(sec.Heading)
		md.PlainText("")
		md.PlainText(sec.Body)
		md.PlainText("")
	}

	if len(sections.HelpTopics) > 0 {
		md.H2("Tópicos com pedido de apoio")
		md.PlainText("")
		md.BulletList(sections.HelpTopics...)
		md.PlainText("")
	}

	rows := Rows(in.Schema, in.Answers, in.Custom)
	if len(rows) > 0 {
		table := make([][]string, 0, len(rows))
		for _, row := range rows {
			table = append(table, row.Strings())
		}
		md.H2("Respostas")
		md.PlainText("")
		md.Table(markdown.TableSet{Header: TabularHeader, Rows: table})
		md.PlainText("")
	}

	if err := md.Build(); err != nil {
		return Artifact{}, fmt.Errorf("export: build markdown: %w", err)
	}
	return Artifact{
		Filename:    safeFilename(fmt.Sprintf("Relatorio_Biometria_%s%s", campus, m.Extension())),
		ContentType: "text/markdown; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}
