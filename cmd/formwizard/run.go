package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/pkg/export"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
)

type runFlags struct {
	form      string
	formats   []string
	out       string
	schemaDir string
	forceRIPD bool
}

func newRunCmd(a *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill in a wizard interactively and export the answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := applyRunFlags(cmd, *a.cfg, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runWizard(cmd, a, cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.form, "form", "f", "", "wizard to run (see formwizard forms)")
	cmd.Flags().StringSliceVar(&flags.formats, "format", nil, "export formats (csv, xlsx, docx, markdown, ripd)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "directory the exports are written to")
	cmd.Flags().StringVar(&flags.schemaDir, "schema-dir", "", "load wizards from this directory instead of the built-in ones")
	cmd.Flags().BoolVar(&flags.forceRIPD, "force-ripd", false, "write the impact report draft even for low-risk processes")

	return cmd
}

func applyRunFlags(cmd *cobra.Command, cfg config.Config, flags runFlags) config.Config {
	if cmd.Flags().Changed("form") {
		cfg.Wizard.Form = flags.form
	}
	if cmd.Flags().Changed("format") {
		cfg.Export.Formats = flags.formats
	}
	if cmd.Flags().Changed("out") {
		cfg.Export.Dir = flags.out
	}
	if cmd.Flags().Changed("schema-dir") {
		cfg.Wizard.SchemaDir = flags.schemaDir
	}
	if cmd.Flags().Changed("force-ripd") {
		cfg.Export.ForceRIPD = flags.forceRIPD
	}
	return cfg
}

func runWizard(cmd *cobra.Command, a *app, cfg config.Config) error {
	logger := zap.L()

	registry, err := buildRegistry(cfg.Export)
	if err != nil {
		return err
	}
	options := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithExporters(registry),
		orchestrator.WithSaver(export.NewFileSaver(cfg.Export.Dir)),
	}
	if cfg.Wizard.SchemaDir != "" {
		options = append(options, orchestrator.WithSchemaFS(os.DirFS(cfg.Wizard.SchemaDir)))
	}
	orch := orchestrator.New(options...)

	sess, err := orch.Start(cfg.Wizard.Form)
	if err != nil {
		return eris.Wrapf(err, "start wizard %q", cfg.Wizard.Form)
	}

	runnerOptions := []tui.Option{tui.WithLogger(logger)}
	if a.driver != nil {
		runnerOptions = append(runnerOptions, tui.WithPromptDriver(a.driver))
	} else {
		runnerOptions = append(runnerOptions, tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())))
	}
	runner, err := tui.New(sess.Controller, runnerOptions...)
	if err != nil {
		return err
	}
	if err := runner.Run(cmd.Context()); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Preenchimento cancelado.")
		}
		return err
	}

	formats, skipped := orch.FormatsFor(sess, cfg.Export.Formats)
	for _, format := range skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "Formato %q não se aplica ao formulário %q; ignorado.\n", format, sess.FormID)
	}

	saved, err := orch.ExportAll(cmd.Context(), sess, formats)
	for _, location := range saved {
		fmt.Fprintf(cmd.OutOrStdout(), "Arquivo salvo: %s\n", location)
	}
	if err != nil {
		logger.Warn("some exports failed", zap.String("session", sess.ID), zap.Error(err))
		return eris.Wrap(err, "export")
	}
	return nil
}

func buildRegistry(cfg config.ExportConfig) (*export.Registry, error) {
	var converter export.Converter = export.AltChunkConverter{}
	if cfg.DisableDocx {
		converter = nil
	}
	docx, err := export.NewDocx(export.WithConverter(converter))
	if err != nil {
		return nil, err
	}

	registry := export.NewRegistry()
	for _, exp := range []export.Exporter{
		export.NewCSV(),
		export.NewXLSX(),
		docx,
		export.NewMarkdown(),
		export.NewRIPD(export.WithForce(cfg.ForceRIPD)),
	} {
		if err := registry.Register(exp); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
