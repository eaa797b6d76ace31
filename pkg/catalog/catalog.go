// Package catalog bundles the lookup tables and wizard schemas shipped with
// the module.
package catalog

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/uischema"
)

// Built-in form ids.
const (
	FormBiometria  = "biometria"
	FormInventario = "inventario"
)

// Campus lists the IFSC campuses offered by the campus selector.
var Campus = []string{
	"Araranguá", "Caçador", "Canoinhas", "Chapecó", "Criciúma", "Florianópolis",
	"Florianópolis-Continente", "Garopaba", "Gaspar", "Itajaí", "Jaraguá do Sul-Centro",
	"Jaraguá do Sul-RAU", "Joinville", "Lages", "Palhoça Bilíngue", "Reitoria",
	"São Carlos", "São José", "São Lourenço do Oeste", "São Miguel do Oeste",
	"Tubarão", "Urupema", "Xanxerê",
}

// CategoriasDadosSensiveis are the sensitive personal-data categories of the
// LGPD.
var CategoriasDadosSensiveis = []string{
	"Origem racial ou étnica",
	"Convicção religiosa",
	"Opinião política",
	"Filiação a sindicato",
	"Dado referente à saúde ou à vida sexual",
	"Dado genético ou biométrico",
}

// CategoriasTitulares are the data-subject groups common in a teaching
// institution.
var CategoriasTitulares = []string{
	"Alunos",
	"Servidores (Docentes/TAEs)",
	"Funcionários Terceirizados",
	"Candidatos a Vagas",
	"Visitantes",
	"Comunidade Externa",
}

// BasesLegais are the legal bases for processing listed in Art. 7 of the LGPD.
var BasesLegais = []string{
	"Consentimento do titular",
	"Cumprimento de obrigação legal ou regulatória pelo controlador",
	"Execução de políticas públicas",
	"Estudos por órgão de pesquisa",
	"Execução de contrato",
	"Exercício regular de direitos",
	"Proteção da vida",
	"Tutela da saúde",
	"Legítimo interesse do controlador",
}

// SimNao is the yes/no pair used by radio questions.
var SimNao = []string{"Sim", "Não"}

var tables = map[string][]string{
	"campus":                   Campus,
	"categoriasDadosSensiveis": CategoriasDadosSensiveis,
	"categoriasTitulares":      CategoriasTitulares,
	"basesLegais":              BasesLegais,
	"simNao":                   SimNao,
}

// Lookup returns a copy of the named table.
func Lookup(name string) ([]string, bool) {
	table, ok := tables[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), table...), true
}

var (
	loadOnce sync.Once
	store    *uischema.Store
	loadErr  error
)

func embedded() (*uischema.Store, error) {
	loadOnce.Do(func() {
		store, loadErr = uischema.LoadFS(uischema.EmbeddedFS(), uischema.WithLookup(Lookup))
	})
	return store, loadErr
}

// Load returns the built-in schema with the given id.
func Load(id string) (schema.Schema, error) {
	forms, err := embedded()
	if err != nil {
		return schema.Schema{}, err
	}
	form, ok := forms.Form(id)
	if !ok {
		return schema.Schema{}, fmt.Errorf("catalog: unknown form %q", id)
	}
	return form, nil
}

// MustLoad is Load for init-time wiring; it panics on failure.
func MustLoad(id string) schema.Schema {
	form, err := Load(id)
	if err != nil {
		panic(err)
	}
	return form
}

// Forms lists the ids of the built-in schemas.
func Forms() []string {
	forms, err := embedded()
	if err != nil {
		return nil
	}
	return forms.IDs()
}
