package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dhamidi/fidl/format"
	"github.com/dhamidi/fidl/syntax"
)

func newParseCmd(e *env) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .fidl file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			source, err := afero.ReadFile(e.fs, filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			tree, err := syntax.Parse(source, syntax.WithFile(filename))
			if err != nil {
				return describe(err)
			}

			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := enc.Encode(source, tree); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, json or fidl")

	return cmd
}
