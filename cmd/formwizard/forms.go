package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/catalog"
)

func newFormsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List the built-in wizards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, id := range catalog.Forms() {
				form, err := catalog.Load(id)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(out, "%s\t%s (%d etapas)\n", form.ID, form.Title, len(form.Steps)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
