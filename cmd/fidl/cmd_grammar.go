package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dhamidi/fidl/grammar"
)

func newGrammarCmd(e *env) *cobra.Command {
	var lexFile string

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the FIDL grammar in EBNF",
		Long: `Print the FIDL grammar in EBNF after verifying it.

With --lex, tokenize a file using the grammar's lexical productions
instead and print one token per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := grammar.Load(); err != nil {
				return fmt.Errorf("verify grammar: %w", err)
			}
			out := cmd.OutOrStdout()
			if lexFile == "" {
				_, err := out.Write(grammar.Source())
				return err
			}

			source, err := afero.ReadFile(e.fs, lexFile)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			tokens, err := grammar.Tokenize(source, lexFile)
			if err != nil {
				return err
			}
			for _, tok := range tokens {
				fmt.Fprintln(out, tok)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lexFile, "lex", "", "tokenize this file with the grammar")

	return cmd
}
