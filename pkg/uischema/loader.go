package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/visibility/expr"
)

// LookupFunc resolves a named option table (for example "campus") to its
// entries.
type LookupFunc func(name string) ([]string, bool)

// ConditionCompiler turns a rule string into a condition.
type ConditionCompiler func(rule string) (schema.Condition, error)

// Option configures the loader.
type Option func(*loaderConfig)

type loaderConfig struct {
	lookup  LookupFunc
	compile ConditionCompiler
}

// WithLookup resolves `optionsFrom` references through fn.
func WithLookup(fn LookupFunc) Option {
	return func(cfg *loaderConfig) {
		cfg.lookup = fn
	}
}

// WithConditionCompiler overrides the rule compiler. The default is
// expr.Compile.
func WithConditionCompiler(fn ConditionCompiler) Option {
	return func(cfg *loaderConfig) {
		if fn != nil {
			cfg.compile = fn
		}
	}
}

func newConfig(options []Option) *loaderConfig {
	cfg := &loaderConfig{compile: expr.Compile}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// Store holds the schemas loaded from a filesystem keyed by schema id.
type Store struct {
	forms map[string]schema.Schema
}

// LoadFS walks the provided filesystem and parses every JSON/YAML schema
// file. When fsys is nil the returned store is empty.
func LoadFS(fsys fs.FS, options ...Option) (*Store, error) {
	store := &Store{forms: make(map[string]schema.Schema)}
	if fsys == nil {
		return store, nil
	}
	cfg := newConfig(options)

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		form, err := parse(data, path, cfg)
		if err != nil {
			return err
		}
		if _, exists := store.forms[form.ID]; exists {
			return fmt.Errorf("uischema: duplicate form %q (file %s)", form.ID, path)
		}
		store.forms[form.ID] = form
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes a single schema document. source names the document in
// error messages.
func Parse(data []byte, source string, options ...Option) (schema.Schema, error) {
	return parse(data, source, newConfig(options))
}

// Form returns the schema with the given id.
func (s *Store) Form(id string) (schema.Schema, bool) {
	if s == nil {
		return schema.Schema{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// IDs lists the loaded schema ids in lexical order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any schema.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	ID      string     `json:"id" yaml:"id"`
	Title   string     `json:"title" yaml:"title"`
	Formats []string   `json:"formats" yaml:"formats"`
	Steps   []stepFile `json:"steps" yaml:"steps"`
}

type stepFile struct {
	ID     string      `json:"id" yaml:"id"`
	Title  string      `json:"title" yaml:"title"`
	Fields []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	ID          string         `json:"id" yaml:"id"`
	Label       string         `json:"label" yaml:"label"`
	Type        string         `json:"type" yaml:"type"`
	Options     []optionFile   `json:"options" yaml:"options"`
	OptionsFrom string         `json:"optionsFrom" yaml:"optionsFrom"`
	Required    bool           `json:"required" yaml:"required"`
	Placeholder string         `json:"placeholder" yaml:"placeholder"`
	Condition   string         `json:"condition" yaml:"condition"`
	Unknown     *exclusiveFile `json:"unknown" yaml:"unknown"`
	NeedsHelp   *exclusiveFile `json:"needsHelp" yaml:"needsHelp"`
}

type exclusiveFile struct {
	Key  string `json:"key" yaml:"key"`
	Text string `json:"text" yaml:"text"`
}

// optionFile accepts either a bare string or a {key, text, customTrigger}
// object.
type optionFile struct {
	Key           string `json:"key" yaml:"key"`
	Text          string `json:"text" yaml:"text"`
	CustomTrigger bool   `json:"customTrigger" yaml:"customTrigger"`
}

func (o *optionFile) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		*o = optionFile{Key: bare, Text: bare}
		return nil
	}
	type plain optionFile
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = optionFile(p)
	return nil
}

func (o *optionFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*o = optionFile{Key: node.Value, Text: node.Value}
		return nil
	}
	type plain optionFile
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*o = optionFile(p)
	return nil
}

func parse(data []byte, source string, cfg *loaderConfig) (schema.Schema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return schema.Schema{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return schema.Schema{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}

	form, err := normaliseDocument(doc, source, cfg)
	if err != nil {
		return schema.Schema{}, err
	}
	if err := form.Validate(); err != nil {
		return schema.Schema{}, fmt.Errorf("uischema: file %s: %w", source, err)
	}
	return form, nil
}

func normaliseDocument(doc documentFile, source string, cfg *loaderConfig) (schema.Schema, error) {
	id := strings.TrimSpace(doc.ID)
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	form := schema.Schema{
		ID:    id,
		Title: strings.TrimSpace(doc.Title),
		Steps: make([]schema.Step, 0, len(doc.Steps)),
	}
	for _, format := range doc.Formats {
		form.Formats = append(form.Formats, strings.ToLower(strings.TrimSpace(format)))
	}

	for _, rawStep := range doc.Steps {
		step := schema.Step{
			ID:     strings.TrimSpace(rawStep.ID),
			Title:  strings.TrimSpace(rawStep.Title),
			Fields: make([]schema.Field, 0, len(rawStep.Fields)),
		}
		for _, rawField := range rawStep.Fields {
			field, err := normaliseField(rawField, cfg)
			if err != nil {
				return schema.Schema{}, fmt.Errorf("uischema: file %s step %q field %q: %w", source, step.ID, rawField.ID, err)
			}
			step.Fields = append(step.Fields, field)
		}
		form.Steps = append(form.Steps, step)
	}
	return form, nil
}

func normaliseField(raw fieldFile, cfg *loaderConfig) (schema.Field, error) {
	field := schema.Field{
		ID:          strings.TrimSpace(raw.ID),
		Label:       strings.TrimSpace(raw.Label),
		Kind:        schema.FieldKind(strings.ToLower(strings.TrimSpace(raw.Type))),
		Required:    raw.Required,
		Placeholder: raw.Placeholder,
		Rule:        strings.TrimSpace(raw.Condition),
	}

	for _, opt := range raw.Options {
		field.Options = append(field.Options, normaliseOption(opt))
	}

	if table := strings.TrimSpace(raw.OptionsFrom); table != "" {
		if cfg.lookup == nil {
			return schema.Field{}, fmt.Errorf("optionsFrom %q requires a lookup", table)
		}
		entries, ok := cfg.lookup(table)
		if !ok {
			return schema.Field{}, fmt.Errorf("unknown optionsFrom table %q", table)
		}
		for _, entry := range entries {
			field.Options = append(field.Options, schema.Option{Key: entry, Text: entry})
		}
	}

	if raw.Unknown != nil {
		field.Unknown = normaliseExclusive(*raw.Unknown)
	}
	if raw.NeedsHelp != nil {
		field.NeedsHelp = normaliseExclusive(*raw.NeedsHelp)
	}

	if field.Rule != "" {
		cond, err := cfg.compile(field.Rule)
		if err != nil {
			return schema.Field{}, fmt.Errorf("condition: %w", err)
		}
		field.Condition = cond
	}
	return field, nil
}

func normaliseOption(raw optionFile) schema.Option {
	key := strings.TrimSpace(raw.Key)
	text := strings.TrimSpace(raw.Text)
	if text == "" {
		text = key
	}
	return schema.Option{Key: key, Text: text, CustomTrigger: raw.CustomTrigger}
}

func normaliseExclusive(raw exclusiveFile) *schema.Exclusive {
	key := strings.TrimSpace(raw.Key)
	text := strings.TrimSpace(raw.Text)
	if text == "" {
		text = key
	}
	return &schema.Exclusive{Key: key, Text: text}
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
