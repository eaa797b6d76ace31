package report

import "strings"

// Section names in document order.
const (
	SectionIntro                  = "intro"
	SectionEscopo                 = "escopo"
	SectionTechnicalMeasures      = "technicalMeasures"
	SectionOrganizationalMeasures = "organizationalMeasures"
	SectionAudits                 = "audits"
	SectionRecommendations        = "recommendations"
	SectionConclusion             = "conclusion"
)

// Placeholder replaces any answer that was never given.
const Placeholder = "[NÃO INFORMADO]"

// Section is one headed block of the report. Block sections hold several
// paragraphs of markup; the others are a single paragraph body.
type Section struct {
	Name    string
	Heading string
	Body    string
	Block   bool
}

// Sections is the composed report. Bodies may contain <p>, <strong> and <br>
// markup; every other piece of text is escaped.
type Sections struct {
	Intro                  string
	Escopo                 string
	TechnicalMeasures      string
	OrganizationalMeasures string
	Audits                 string
	Recommendations        string
	Conclusion             string

	// HelpTopics lists the labels of fields where assistance was requested.
	HelpTopics []string
}

// Ordered returns the sections with their headings in document order.
func (s Sections) Ordered() []Section {
	return []Section{
		{Name: SectionIntro, Heading: "1. INTRODUÇÃO", Body: s.Intro},
		{Name: SectionEscopo, Heading: "2. ESCOPO", Body: s.Escopo},
		{Name: SectionTechnicalMeasures, Heading: "3. MEDIDAS DE SEGURANÇA TÉCNICAS", Body: s.TechnicalMeasures, Block: true},
		{Name: SectionOrganizationalMeasures, Heading: "4. MEDIDAS DE SEGURANÇA ORGANIZACIONAIS", Body: s.OrganizationalMeasures, Block: true},
		{Name: SectionAudits, Heading: "5. AUDITORIAS E TESTES", Body: s.Audits},
		{Name: SectionRecommendations, Heading: "6. RECOMENDAÇÕES E MELHORIAS", Body: s.Recommendations},
		{Name: SectionConclusion, Heading: "7. CONCLUSÃO", Body: s.Conclusion},
	}
}

// Map exposes the sections keyed by name.
func (s Sections) Map() map[string]string {
	out := make(map[string]string, 7)
	for _, sec := range s.Ordered() {
		out[sec.Name] = sec.Body
	}
	return out
}

// Get returns a section body by name.
func (s Sections) Get(name string) (string, bool) {
	for _, sec := range s.Ordered() {
		if sec.Name == name {
			return sec.Body, true
		}
	}
	return "", false
}

// PlainSections returns the sections with their markup stripped, for text
// sinks.
func (s Sections) PlainSections() []Section {
	ordered := s.Ordered()
	for i := range ordered {
		ordered[i].Body = PlainText(ordered[i].Body)
	}
	return ordered
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
