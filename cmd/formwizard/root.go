package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
)

// app carries state shared by the subcommands.
type app struct {
	cfg    *config.Config
	driver tui.PromptDriver
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formwizard",
		Short: "Guided questionnaires for biometric access control and LGPD data inventories",
		Long: `formwizard walks an IFSC campus through a step-by-step questionnaire and
exports the answers as spreadsheets, a technical report or an impact report draft.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return eris.Wrap(err, "load config")
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				cfg.Log.Level = level
			}
			if err := config.InitLogger(cfg.Log); err != nil {
				return eris.Wrap(err, "init logger")
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	cmd.PersistentFlags().String("log-level", "", "override log.level (debug, info, warn, error)")

	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newLintCmd())
	cmd.AddCommand(newFormsCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
