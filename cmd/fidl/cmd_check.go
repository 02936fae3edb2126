package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/fidl/model"
	"github.com/dhamidi/fidl/project"
)

// checkResult is the machine-readable outcome of checking one file.
type checkResult struct {
	Path  string      `json:"path" yaml:"path"`
	Error string      `json:"error,omitempty" yaml:"error,omitempty"`
	Model *model.File `json:"model,omitempty" yaml:"model,omitempty"`
}

func newCheckCmd(e *env) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Parse and build every .fidl file, reporting errors",
		Long: `Parse and build every .fidl file, reporting syntax errors and names
declared twice in the same scope.

With -o json or -o yaml the semantic model of every file is printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(e.fs, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch output {
			case "text":
				printDiagnostics(out, p)
			case "json", "yaml":
				var results []checkResult
				for _, f := range p.Files {
					r := checkResult{Path: f.Path, Model: f.Model}
					if f.Err != nil {
						r.Error = describe(f.Err).Error()
					}
					results = append(results, r)
				}
				if err := encode(out, output, results); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown output: %s", output)
			}

			if failed := len(p.Failed()); failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(p.Files))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")

	return cmd
}

func printDiagnostics(w io.Writer, p *project.Project) {
	red := color.New(color.FgRed)
	for _, f := range p.Files {
		if f.Err != nil {
			red.Fprintf(w, "%v\n", describe(f.Err))
		}
	}
	fmt.Fprintf(w, "checked %d files, %d failed\n", len(p.Files), len(p.Failed()))
}

func encode(w io.Writer, output string, v any) error {
	if output == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
