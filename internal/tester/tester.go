// Package tester simulates rule matching against a list of candidate file
// paths and reports which files would be copied, excluded, or silently
// skipped by the configuration.
package tester

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"copycheck/internal/match"
	"copycheck/pkg/types"
)

const banner = "============================================================"

// Stats summarizes one tester run.
type Stats struct {
	Total        int
	Matched      int
	Excluded     int
	Skipped      int
	SkippedFiles []string
}

// Run classifies every file in order and writes the full report to w:
// per-file classification, a summary table, the skipped-file list, and
// remediation guidance. The run is advisory; callers always exit 0.
func Run(w io.Writer, m *match.Matcher, files []string) Stats {
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "Pattern Matching Test Tool")
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w)

	transforms := targetTransforms(m.Rules())

	stats := Stats{Total: len(files)}
	for _, result := range m.ClassifyAll(files) {
		printResult(w, result, transforms)
		switch result.Status {
		case types.StatusExcluded:
			stats.Excluded++
		case types.StatusMatched:
			stats.Matched++
		default:
			stats.Skipped++
			stats.SkippedFiles = append(stats.SkippedFiles, result.Path)
		}
	}

	printSummary(w, stats)
	return stats
}

// printResult writes the classification block for one file.
func printResult(w io.Writer, result types.MatchResult, transforms map[string][]ruleTarget) {
	switch result.Status {
	case types.StatusExcluded:
		fmt.Fprintf(w, "🟡 EXCLUDED  %s\n", result.Path)
		fmt.Fprintln(w, "             └─ Matches exclusion pattern")
	case types.StatusMatched:
		fmt.Fprintf(w, "✅ MATCHED   %s\n", result.Path)
		for _, rm := range result.Matches {
			fmt.Fprintf(w, "             └─ Rule: %s\n", rm.Rule)
			for _, rt := range transforms[rm.Rule] {
				dest, err := match.Transform(result.Path, rt.transform, rm.Variables)
				if err != nil {
					fmt.Fprintf(w, "                → %s: %v\n", rt.repo, err)
					continue
				}
				fmt.Fprintf(w, "                → %s: %s\n", rt.repo, dest)
			}
		}
	default:
		fmt.Fprintf(w, "❌ SKIPPED   %s\n", result.Path)
		fmt.Fprintln(w, "             └─ No matching rules!")
	}
	fmt.Fprintln(w)
}

// printSummary writes the closing summary table and guidance text.
func printSummary(w io.Writer, stats Stats) {
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "Summary")
	fmt.Fprintln(w, banner)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Result", "Files"})
	t.AppendRows([]table.Row{
		{"Total", stats.Total},
		{"✅ Matched", stats.Matched},
		{"🟡 Excluded", stats.Excluded},
		{"❌ Skipped", stats.Skipped},
	})
	t.Render()
	fmt.Fprintln(w)

	if stats.Skipped > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d files will NOT be copied!\n", stats.Skipped)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "These files don't match any pattern in your config:")
		for _, path := range stats.SkippedFiles {
			fmt.Fprintf(w, "  - %s\n", path)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "If they should be copied, you need to add rules for them.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Common fixes:")
		fmt.Fprintln(w, "  1. Add a catch-all rule for the source directory")
		fmt.Fprintln(w, "  2. Add specific rules for these file types")
		fmt.Fprintln(w, "  3. Verify these files should actually be excluded")
	} else {
		fmt.Fprintln(w, "✅ All non-excluded files have matching rules!")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "Next Steps")
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "1. Review the SKIPPED files above")
	fmt.Fprintln(w, "2. Decide if they should be copied")
	fmt.Fprintln(w, "3. If yes, add patterns to your copier config")
	fmt.Fprintln(w, "4. Run this command again to verify")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "To test against REAL files from your repo:")
	fmt.Fprintln(w, "  git diff --name-only main > changed-files.txt")
	fmt.Fprintln(w, "  copycheck patterns --files-from changed-files.txt")
	fmt.Fprintln(w)
}

// ruleTarget is a target with a path transform worth previewing.
type ruleTarget struct {
	repo      string
	transform string
}

// targetTransforms indexes path transforms by rule name so matched lines can
// show where each file would land.
func targetTransforms(rules []types.Rule) map[string][]ruleTarget {
	transforms := make(map[string][]ruleTarget)
	for _, rule := range rules {
		for _, target := range rule.Targets {
			if strings.TrimSpace(target.PathTransform) == "" {
				continue
			}
			transforms[rule.Name] = append(transforms[rule.Name], ruleTarget{
				repo:      target.Repo,
				transform: target.PathTransform,
			})
		}
	}
	return transforms
}
