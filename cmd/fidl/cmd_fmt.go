package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/fidl/format"
	"github.com/dhamidi/fidl/project"
	"github.com/dhamidi/fidl/syntax"
)

type fmtMode int

const (
	fmtWrite fmtMode = iota
	fmtDryRun
	fmtList
	fmtDiff
)

// fmtResult is the outcome of formatting one file.
type fmtResult struct {
	path      string
	original  []byte
	formatted []byte
	err       error
}

func (r fmtResult) changed() bool {
	return r.err == nil && !bytes.Equal(r.original, r.formatted)
}

type fmtOptions struct {
	dryRun bool
	list   bool
	diff   bool
	jobs   int
}

func (o *fmtOptions) mode() fmtMode {
	switch {
	case o.dryRun:
		return fmtDryRun
	case o.list:
		return fmtList
	case o.diff:
		return fmtDiff
	}
	return fmtWrite
}

func (o *fmtOptions) flagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.BoolVarP(&o.dryRun, "dry-run", "d", false, "print the formatted text instead of writing files")
	flags.BoolVarP(&o.list, "list", "l", false, "list files whose formatting differs")
	flags.BoolVar(&o.diff, "diff", false, "print a unified diff for every file whose formatting differs")
	flags.IntVarP(&o.jobs, "jobs", "j", 0, "number of files to format in parallel (default $FIDL_JOBS or one per CPU)")
	return flags
}

func newFmtCmd(e *env) *cobra.Command {
	opts := &fmtOptions{}

	cmd := &cobra.Command{
		Use:   "fmt [path...]",
		Short: "Format .fidl files, preserving comments",
		Long: `Format .fidl files in place.

Directories are searched recursively for .fidl files.
If no path is provided, reads FIDL source from stdin and writes the
formatted text to stdout.

Use -d to print the formatted text instead of writing it, -l to list the
files whose formatting differs, or --diff to print unified diffs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return formatStdin(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			mode := opts.mode()
			jobs := opts.jobs
			if jobs <= 0 {
				jobs = e.conf.Workers()
			}

			files, err := project.Collect(e.fs, args)
			if err != nil {
				return err
			}
			results := formatFiles(cmd, e.fs, files, jobs, mode == fmtWrite)
			return report(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, mode)
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().AddFlagSet(opts.flagSet())
	cmd.MarkFlagsMutuallyExclusive("dry-run", "list", "diff")

	return cmd
}

func formatStdin(in io.Reader, out io.Writer) error {
	source, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	output, err := format.PrettyPrintFile(source, "<stdin>")
	if err != nil {
		return describe(err)
	}
	_, err = out.Write(output)
	return err
}

// formatFiles formats every file in parallel. Each task owns its file;
// results land in their own slot so no locking is needed.
func formatFiles(cmd *cobra.Command, fs afero.Fs, files []string, jobs int, write bool) []fmtResult {
	results := make([]fmtResult, len(files))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			results[i] = fmtResult{path: path}
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i] = formatFile(fs, path, write)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func formatFile(fs afero.Fs, path string, write bool) fmtResult {
	r := fmtResult{path: path}
	source, err := afero.ReadFile(fs, path)
	if err != nil {
		r.err = fmt.Errorf("read file: %w", err)
		return r
	}
	r.original = source

	formatted, err := format.PrettyPrintFile(source, path)
	if err != nil {
		r.err = describe(err)
		return r
	}
	r.formatted = formatted

	if write && r.changed() {
		if err := afero.WriteFile(fs, path, formatted, 0o644); err != nil {
			r.err = fmt.Errorf("write file: %w", err)
			return r
		}
		log.Infof("formatted %s", path)
	}
	return r
}

// describe adds how far parsing got to parse errors.
func describe(err error) error {
	var parseErr *syntax.Error
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w (%s)", err, parseErr.Progress())
	}
	return err
}

func report(stdout, stderr io.Writer, results []fmtResult, mode fmtMode) error {
	red := color.New(color.FgRed)
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			log.Errorf("%s: %v", r.path, r.err)
			red.Fprintf(stderr, "%s: %v\n", r.path, r.err)
			continue
		}

		switch mode {
		case fmtDryRun:
			if _, err := stdout.Write(r.formatted); err != nil {
				return err
			}
		case fmtList:
			if r.changed() {
				fmt.Fprintln(stdout, r.path)
			}
		case fmtDiff:
			if !r.changed() {
				continue
			}
			diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(string(r.original)),
				B:        difflib.SplitLines(string(r.formatted)),
				FromFile: r.path,
				ToFile:   r.path + " (formatted)",
				Context:  3,
			})
			if err != nil {
				return fmt.Errorf("diff %s: %w", r.path, err)
			}
			fmt.Fprint(stdout, diff)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
