package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/uischema"
)

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Validate wizard schema files",
		Long: `Parses each schema file, resolves option tables and compiles visibility
conditions. Without arguments the built-in schemas are checked.`,
		RunE: func(cmd *cobra.Command, paths []string) error {
			out := cmd.OutOrStdout()
			if len(paths) == 0 {
				store, err := uischema.LoadFS(uischema.EmbeddedFS(), uischema.WithLookup(catalog.Lookup))
				if err != nil {
					return eris.Wrap(err, "lint: embedded schemas")
				}
				for _, id := range store.IDs() {
					form, _ := store.Form(id)
					fmt.Fprintf(out, "ok\t(embedded) %s: %d steps, %d fields\n", form.ID, len(form.Steps), form.FieldCount())
				}
				return nil
			}

			failed := 0
			for _, path := range paths {
				if err := lintFile(cmd, path); err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "fail\t%s: %v\n", path, err)
				}
			}
			if failed > 0 {
				return eris.Errorf("lint: %d of %d file(s) failed", failed, len(paths))
			}
			return nil
		},
	}
}

func lintFile(cmd *cobra.Command, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return eris.Wrap(err, "stat")
	}
	if info.IsDir() {
		store, err := uischema.LoadFS(os.DirFS(path), uischema.WithLookup(catalog.Lookup))
		if err != nil {
			return err
		}
		if store.Empty() {
			return eris.Wrapf(fs.ErrNotExist, "no schema files in %s", path)
		}
		for _, id := range store.IDs() {
			form, _ := store.Form(id)
			fmt.Fprintf(cmd.OutOrStdout(), "ok\t%s/%s: %d steps, %d fields\n", path, form.ID, len(form.Steps), form.FieldCount())
		}
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrap(err, "read file")
	}
	form, err := uischema.Parse(raw, path, uischema.WithLookup(catalog.Lookup))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok\t%s: %d steps, %d fields\n", path, len(form.Steps), form.FieldCount())
	return nil
}
