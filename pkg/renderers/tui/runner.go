package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	navNext   = "Próximo"
	navBack   = "Voltar"
	navFinish = "Concluir"

	requiredMarker = " *"
	disabledSuffix = " (indisponível)"
)

// Runner drives a wizard controller through terminal prompts.
type Runner struct {
	ctrl   *wizard.Controller
	driver PromptDriver
	logger *zap.Logger
	theme  Theme
}

// New builds a runner bound to ctrl. The survey driver is used unless
// WithPromptDriver overrides it.
func New(ctrl *wizard.Controller, options ...Option) (*Runner, error) {
	if ctrl == nil {
		return nil, ErrNoController
	}
	r := &Runner{
		ctrl:   ctrl,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Run walks the steps until the user finishes on the last step. Answers
// stay in the controller; exporting is up to the caller.
func (r *Runner) Run(ctx context.Context) error {
	for {
		step := r.ctrl.CurrentStep()
		header := fmt.Sprintf("%s[%d/%d] %s", r.theme.StepPrefix, r.ctrl.Current()+1, r.ctrl.StepCount(), step.Title)
		if err := r.driver.Info(ctx, header); err != nil {
			return err
		}

		if err := r.promptStep(ctx, step); err != nil {
			return err
		}

		done, err := r.navigate(ctx)
		if err != nil {
			return err
		}
		if done {
			r.logger.Info("wizard finished", zap.String("form", r.ctrl.Schema().ID))
			return nil
		}
	}
}

// promptStep asks every field of step in order. Visibility is checked right
// before each prompt so a field revealed by an earlier answer is asked in
// the same pass.
func (r *Runner) promptStep(ctx context.Context, step schema.Step) error {
	for _, field := range step.Fields {
		view, ok := r.ctrl.FieldState(step.ID, field.ID)
		if !ok {
			continue
		}
		if err := r.promptField(ctx, step.ID, view); err != nil {
			return err
		}
		if err := r.promptCustom(ctx, step.ID, field.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) promptField(ctx context.Context, stepID string, view wizard.FieldView) error {
	field := view.Field
	message := field.Label
	if field.Required {
		message += requiredMarker
	}

	choice := func() error {
		labels := make([]string, len(view.Options))
		current := -1
		for i, opt := range view.Options {
			labels[i] = opt.Text
			if opt.Selected {
				current = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: current,
			Help:         field.Placeholder,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(view.Options) {
			return nil
		}
		return r.ctrl.EditAt(stepID, field.ID, view.Options[idx].Key)
	}

	text := func() error {
		raw, err := r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: view.Value.Text(),
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		return r.ctrl.EditAt(stepID, field.ID, raw)
	}

	handled, err := schema.Dispatch(field.Kind, schema.KindHandlers[error]{
		Select:   choice,
		Radio:    choice,
		Checkbox: func() error { return r.promptChecks(ctx, stepID, message, view) },
		Text:     text,
		Number: func() error {
			for {
				err := text()
				if !errors.Is(err, wizard.ErrNotNumeric) {
					return err
				}
				if err := r.info(ctx, "Informe um número válido."); err != nil {
					return err
				}
			}
		},
		TextArea: func() error {
			raw, err := r.driver.TextArea(ctx, TextAreaConfig{
				Message: message,
				Default: view.Value.Text(),
				Help:    field.Placeholder,
			})
			if err != nil {
				return err
			}
			return r.ctrl.EditAt(stepID, field.ID, raw)
		},
	})
	if err != nil {
		return err
	}
	return handled
}

// promptChecks shows a multi-choice field and turns the picked set into
// toggles. A newly picked exclusive key wins over everything else. While an
// exclusive key stays picked, normal options are disabled and picks on them
// are ignored.
func (r *Runner) promptChecks(ctx context.Context, stepID, message string, view wizard.FieldView) error {
	field := view.Field
	labels := make([]string, len(view.Options))
	var defaults []int
	for i, opt := range view.Options {
		labels[i] = opt.Text
		if opt.Disabled {
			labels[i] += disabledSuffix
		}
		if opt.Selected {
			defaults = append(defaults, i)
		}
	}

	picked, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  message,
		Options:  labels,
		Defaults: defaults,
		Help:     field.Placeholder,
	})
	if err != nil {
		return err
	}

	chosen := make(map[string]bool, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(view.Options) {
			chosen[view.Options[idx].Key] = true
		}
	}

	for _, opt := range view.Options {
		if opt.Exclusive && chosen[opt.Key] && !opt.Selected {
			return r.ctrl.SelectExclusive(stepID, field.ID, opt.Key)
		}
	}

	exclusiveKept := false
	for _, opt := range view.Options {
		if opt.Exclusive && chosen[opt.Key] {
			exclusiveKept = true
		}
	}

	for _, opt := range view.Options {
		if opt.Selected && !chosen[opt.Key] {
			if err := r.ctrl.EditAt(stepID, field.ID, opt.Key); err != nil {
				return err
			}
		}
	}
	if exclusiveKept {
		return nil
	}
	for _, opt := range view.Options {
		if !opt.Selected && chosen[opt.Key] {
			if err := r.ctrl.EditAt(stepID, field.ID, opt.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

// promptCustom edits the free-text entries of a field that declares a custom
// trigger. An empty line ends the loop; "-text" removes an entry.
func (r *Runner) promptCustom(ctx context.Context, stepID, fieldID string) error {
	for {
		view, ok := r.ctrl.FieldState(stepID, fieldID)
		if !ok || !view.CustomEnabled {
			return nil
		}
		help := "Enter vazio para continuar, -texto para remover."
		if len(view.Custom) > 0 {
			help = "Atuais: " + strings.Join(view.Custom, "; ") + ". " + help
		}
		raw, err := r.driver.Input(ctx, InputConfig{
			Message: "Especifique (" + view.Field.Label + ")",
			Help:    help,
		})
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		switch {
		case raw == "":
			return nil
		case strings.HasPrefix(raw, "-"):
			if _, err := r.ctrl.RemoveCustom(stepID, fieldID, strings.TrimSpace(raw[1:])); err != nil {
				return err
			}
		default:
			if _, err := r.ctrl.AddCustom(stepID, fieldID, raw); err != nil {
				return err
			}
		}
	}
}

// navigate asks where to go next and reports whether the user finished.
func (r *Runner) navigate(ctx context.Context) (bool, error) {
	var choices []string
	if !r.ctrl.IsLast() {
		choices = append(choices, navNext)
	}
	if !r.ctrl.IsFirst() {
		choices = append(choices, navBack)
	}
	if r.ctrl.IsLast() {
		choices = append(choices, navFinish)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: "Navegação",
		Options: choices,
	})
	if err != nil {
		return false, err
	}
	if idx < 0 || idx >= len(choices) {
		return false, nil
	}

	switch choices[idx] {
	case navNext:
		r.ctrl.Next()
	case navBack:
		r.ctrl.Prev()
	case navFinish:
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Concluir o formulário?",
			Default: true,
		})
	}
	return false, nil
}

func (r *Runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}
