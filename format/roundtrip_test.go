package format

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/dhamidi/fidl/syntax"
)

var testcasesDir string
var testFilter string

func init() {
	flag.StringVar(&testcasesDir, "testcases", "", "directory containing .fidl test files")
	flag.StringVar(&testFilter, "filter", "", "filter test files by substring match on filename")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

// TestRoundTrip_Testcases formats every .fidl file in the testcases
// directory and checks that the output parses, keeps every construct and
// comment, and formats to itself.
// Run one file with: go test ./format -run TestRoundTrip_Testcases/comments
func TestRoundTrip_Testcases(t *testing.T) {
	if os.Getenv("IN_GIT_PRECOMMIT") == "1" {
		t.Skip("skipping roundtrip tests during pre-commit")
	}

	dir := testcasesDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		for d := wd; d != filepath.Dir(d); d = filepath.Dir(d) {
			candidate := filepath.Join(d, "testcases")
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				dir = candidate
				break
			}
		}
		if dir == "" {
			t.Skip("testcases directory not found; use -testcases flag to specify")
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".fidl") {
			if testFilter != "" && !strings.Contains(path, testFilter) {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk testcases directory: %v", err)
	}
	if len(files) == 0 {
		t.Skipf("no .fidl files found in %s", dir)
	}

	for _, file := range files {
		relPath, err := filepath.Rel(dir, file)
		if err != nil {
			relPath = filepath.Base(file)
		}
		testName := strings.ReplaceAll(relPath, string(filepath.Separator), "_")
		testName = strings.TrimSuffix(testName, ".fidl")

		t.Run(testName, func(t *testing.T) {
			runRoundTripTest(t, file)
		})
	}
}

func runRoundTripTest(t *testing.T, filename string) {
	source, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}

	origTree, err := syntax.Parse(source, syntax.WithFile(filename))
	if err != nil {
		t.Fatalf("original does not parse: %v", err)
	}
	formatted, err := Format(source, origTree)
	if err != nil {
		t.Fatalf("formatter error: %v", err)
	}

	fmtTree, err := syntax.Parse([]byte(formatted), syntax.WithFile(filename))
	if err != nil {
		t.Fatalf("formatted output does not parse: %v\n\n=== Formatted output ===\n%s", err, formatted)
	}

	if diffs := compareRuleCounts(countRules(origTree), countRules(fmtTree)); len(diffs) > 0 {
		t.Errorf("rule count mismatch after round-trip formatting:\n\n%s", formatDiffs(diffs))
	}

	again, err := Format([]byte(formatted), fmtTree)
	if err != nil {
		t.Fatalf("formatter error on formatted output: %v", err)
	}
	if again != formatted {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(formatted),
			B:        difflib.SplitLines(again),
			FromFile: "formatted once",
			ToFile:   "formatted twice",
			Context:  3,
		})
		t.Errorf("formatting is not idempotent:\n%s", diff)
	}
}

// RuleCountDiff is a difference in how often a rule occurs before and
// after formatting.
type RuleCountDiff struct {
	Rule      syntax.Rule
	Original  int
	Formatted int
}

func countRules(tree *syntax.Tree) map[syntax.Rule]int {
	counts := make(map[syntax.Rule]int)
	tree.Walk(syntax.RootKey, func(k syntax.Key, _ int) bool {
		counts[tree.Node(k).Rule]++
		return true
	})
	return counts
}

// layoutOnly lists rules whose count formatting may change: empty in and
// out sections are dropped together with their brackets.
var layoutOnly = map[syntax.Rule]bool{
	syntax.InputParams:  true,
	syntax.OutputParams: true,
	syntax.OpenBracket:  true,
	syntax.CloseBracket: true,
}

func compareRuleCounts(original, formatted map[syntax.Rule]int) []RuleCountDiff {
	var diffs []RuleCountDiff

	all := make(map[syntax.Rule]bool)
	for r := range original {
		all[r] = true
	}
	for r := range formatted {
		all[r] = true
	}
	for rule := range all {
		if layoutOnly[rule] || original[rule] == formatted[rule] {
			continue
		}
		diffs = append(diffs, RuleCountDiff{Rule: rule, Original: original[rule], Formatted: formatted[rule]})
	}

	sort.Slice(diffs, func(i, j int) bool {
		return diffs[i].Original-diffs[i].Formatted > diffs[j].Original-diffs[j].Formatted
	})
	return diffs
}

func formatDiffs(diffs []RuleCountDiff) string {
	var sb strings.Builder
	sb.WriteString("Rule                          Original  Formatted  Delta\n")
	sb.WriteString("------------------------------------------------------------\n")
	for _, d := range diffs {
		delta := d.Formatted - d.Original
		sign := "+"
		if delta < 0 {
			sign = ""
		}
		sb.WriteString(fmt.Sprintf("%-30s %8d  %9d  %s%d\n", d.Rule, d.Original, d.Formatted, sign, delta))
	}
	return sb.String()
}
