package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	multiLabels  [][]string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
	selectErr    error
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectErr != nil {
		return -1, s.selectErr
	}
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multiLabels = append(s.multiLabels, cfg.Options)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func measuresStep() schema.Step {
	return schema.Step{
		ID:    "measures",
		Title: "Medidas",
		Fields: []schema.Field{
			{
				ID:    "criptografia",
				Label: "Criptografia",
				Kind:  schema.KindCheckbox,
				Options: []schema.Option{
					{Key: "aes256", Text: "AES"},
					{Key: "tls13", Text: "TLS"},
				},
				Unknown: &schema.Exclusive{Key: "naoSei", Text: "Não sei"},
			},
		},
	}
}

func walkSchema() schema.Schema {
	return schema.Schema{
		ID: "demo",
		Steps: []schema.Step{
			{
				ID:    "intro",
				Title: "Intro",
				Fields: []schema.Field{
					{ID: "campusName", Label: "Câmpus", Kind: schema.KindSelect, Required: true, Options: []schema.Option{
						{Key: "Florianópolis", Text: "Florianópolis"},
						{Key: "Joinville", Text: "Joinville"},
					}},
					{ID: "ambientes", Label: "Ambientes", Kind: schema.KindCheckbox, Options: []schema.Option{
						{Key: "labs", Text: "Laboratórios"},
						{Key: "dataCenter", Text: "Datacenter"},
						{Key: "other", Text: "Outro", CustomTrigger: true},
					}},
					{ID: "numero", Label: "Número", Kind: schema.KindNumber},
				},
			},
			{
				ID:    "details",
				Title: "Detalhes",
				Fields: []schema.Field{
					{ID: "installationType", Label: "Instalação", Kind: schema.KindRadio, Options: []schema.Option{
						{Key: "local", Text: "Local"},
						{Key: "terceirizado", Text: "Terceirizado"},
					}},
					{
						ID:    "providerName",
						Label: "Fornecedor",
						Kind:  schema.KindText,
						Condition: func(a schema.Answers) bool {
							return a.Text("details", "installationType") == "terceirizado"
						},
					},
				},
			},
			measuresStep(),
		},
	}
}

func newRunner(t *testing.T, s schema.Schema, driver *stubDriver) (*Runner, *wizard.Controller) {
	t.Helper()
	ctrl, err := wizard.New(s)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	r, err := New(ctrl, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	return r, ctrl
}

func TestNew_RequiresController(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); !errors.Is(err, ErrNoController) {
		t.Fatalf("expected ErrNoController, got %v", err)
	}
}

func TestRun_WalksAllSteps(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs:    []string{"Auditório", "", "abc", "5", "AWS"},
		selectIdx: []int{1, 0, 1, 0, 1},
		multiIdx:  [][]int{{0}, {0, 2}},
		confirm:   []bool{true},
	}
	r, ctrl := newRunner(t, walkSchema(), driver)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	a := ctrl.Answers()
	if got := a.Text("intro", "campusName"); got != "Joinville" {
		t.Fatalf("campusName = %q", got)
	}
	if diff := cmp.Diff([]string{"labs"}, a.Selected("intro", "ambientes")); diff != "" {
		t.Fatalf("ambientes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Auditório"}, ctrl.Custom().List("intro", "ambientes")); diff != "" {
		t.Fatalf("custom mismatch (-want +got):\n%s", diff)
	}
	if got := a.Text("intro", "numero"); got != "5" {
		t.Fatalf("numero = %q", got)
	}
	if got := a.Text("details", "providerName"); got != "AWS" {
		t.Fatalf("providerName = %q", got)
	}
	if diff := cmp.Diff([]string{"naoSei"}, a.Selected("measures", "criptografia")); diff != "" {
		t.Fatalf("criptografia mismatch (-want +got):\n%s", diff)
	}

	wantLabels := [][]string{
		{"Laboratórios", "Datacenter"},
		{"AES", "TLS", "Não sei"},
	}
	if diff := cmp.Diff(wantLabels, driver.multiLabels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{
		"[1/3] Intro",
		"Informe um número válido.",
		"[2/3] Detalhes",
		"[3/3] Medidas",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_SkipsHiddenFields(t *testing.T) {
	t.Parallel()

	s := walkSchema()
	s.Steps = s.Steps[1:2]
	driver := &stubDriver{
		selectIdx: []int{0, 0},
		confirm:   []bool{true},
	}
	r, ctrl := newRunner(t, s, driver)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if driver.inputPos != 0 {
		t.Fatalf("hidden providerName was prompted")
	}
	if got := ctrl.Answers().Text("details", "installationType"); got != "local" {
		t.Fatalf("installationType = %q", got)
	}
}

func TestRun_ExclusiveKeyLocksNormalOptions(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		// first pass keeps naoSei and picks a disabled option; second pass
		// unchecks naoSei and keeps AES.
		multiIdx:  [][]int{{0, 2}, {0}},
		selectIdx: []int{0, 0},
		confirm:   []bool{false, true},
	}
	r, ctrl := newRunner(t, schema.Schema{ID: "m", Steps: []schema.Step{measuresStep()}}, driver)
	if err := ctrl.SelectExclusive("measures", "criptografia", "naoSei"); err != nil {
		t.Fatalf("select exclusive: %v", err)
	}

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	wantLabels := [][]string{
		{"AES (indisponível)", "TLS (indisponível)", "Não sei"},
		{"AES (indisponível)", "TLS (indisponível)", "Não sei"},
	}
	if diff := cmp.Diff(wantLabels, driver.multiLabels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"aes256"}, ctrl.Answers().Selected("measures", "criptografia")); diff != "" {
		t.Fatalf("criptografia mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_CustomEntriesCanBeRemoved(t *testing.T) {
	t.Parallel()

	s := walkSchema()
	s.Steps = s.Steps[:1]
	driver := &stubDriver{
		inputs:    []string{"Auditório", "Ginásio", "-Auditório", "", ""},
		selectIdx: []int{0, 0},
		multiIdx:  [][]int{{}},
		confirm:   []bool{true},
	}
	r, ctrl := newRunner(t, s, driver)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"Ginásio"}, ctrl.Custom().List("intro", "ambientes")); diff != "" {
		t.Fatalf("custom mismatch (-want +got):\n%s", diff)
	}
	if got := ctrl.Answers().Text("intro", "numero"); got != "" {
		t.Fatalf("numero = %q", got)
	}
}

func TestRun_PropagatesAbort(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{selectErr: ErrAborted}
	r, _ := newRunner(t, walkSchema(), driver)

	if err := r.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}
