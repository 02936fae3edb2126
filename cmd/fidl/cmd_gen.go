package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/fidl/codegen"
	"github.com/dhamidi/fidl/project"
)

func newGenCmd(e *env) *cobra.Command {
	var outDir, root string

	registry := codegen.NewRegistry()

	cmd := &cobra.Command{
		Use:   "gen <target> <path>...",
		Short: "Generate source code from .fidl files",
		Long: fmt.Sprintf(`Generate source code from .fidl files.

Targets: %v

Outputs are named after each file's path relative to --root.`, registry.Names()),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := registry.Lookup(args[0])
			if err != nil {
				return err
			}
			p, err := project.Load(e.fs, args[1:])
			if err != nil {
				return err
			}
			if failed := p.Failed(); len(failed) > 0 {
				for _, f := range failed {
					log.Errorf("%v", describe(f.Err))
				}
				return fmt.Errorf("%d of %d files failed to load", len(failed), len(p.Files))
			}

			var outputs []codegen.Output
			for _, f := range p.InOrder() {
				generated, err := gen.Generate(f.Model, project.Base(root, f.Path))
				if err != nil {
					return fmt.Errorf("%s: %w", f.Path, err)
				}
				outputs = append(outputs, generated...)
			}
			if err := codegen.WriteOutputs(e.fs, outDir, outputs); err != nil {
				return err
			}
			for _, out := range outputs {
				log.Infof("wrote %s", out.Path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "generated %d files in %s\n", len(outputs), outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "gen", "output directory")
	cmd.Flags().StringVar(&root, "root", ".", "directory output paths are relative to")

	return cmd
}
