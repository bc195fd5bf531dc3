package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"copycheck/internal/config"
	"copycheck/internal/errors"
	"copycheck/internal/validate"
)

// NewValidateCmd creates the validate command
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a copier config file",
		Long: `Validate checks a copier config for structural problems: missing fields,
unknown pattern types, uncompilable patterns, and misconfigured targets.
Issues fail validation; warnings are advisory only.`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				fmt.Println("Usage: copycheck validate <config-file>")
				os.Exit(1)
			}
			if !runValidate(os.Stdout, args[0]) {
				os.Exit(1)
			}
		},
	}
}

// runValidate validates the config at path, writes the report to w, and
// returns overall success.
func runValidate(w io.Writer, path string) bool {
	doc, err := config.LoadDocument(path)
	if err != nil {
		switch {
		case errors.IsParseFailed(err):
			fmt.Fprintln(w, errorText("❌ YAML Parsing Error:"))
			fmt.Fprintf(w, "   %v\n", errors.Unwrap(err))
		case errors.IsBadStructure(err):
			fmt.Fprintln(w, errorText("❌ Config must be a mapping"))
		default:
			fmt.Fprintln(w, errorText(fmt.Sprintf("❌ Error reading file: %v", err)))
		}
		return false
	}

	fmt.Fprintln(w, successText("✅ YAML syntax is valid"))
	fmt.Fprintln(w)

	report, summary := validate.Document(doc)
	if summary == nil {
		fmt.Fprintln(w, errorText("❌ Structural Issues:"))
		for _, issue := range report.Issues {
			fmt.Fprintf(w, "   - %s\n", issue)
		}
		return false
	}

	fmt.Fprintln(w, headerText("📋 Config Summary:"))
	fmt.Fprintf(w, "   Source: %s\n", summary.SourceRepo)
	fmt.Fprintf(w, "   Branch: %s\n", summary.SourceBranch)
	fmt.Fprintf(w, "   Rules: %d\n", len(summary.RuleNames))
	fmt.Fprintln(w)

	for i, name := range summary.RuleNames {
		fmt.Fprintln(w, infoText(fmt.Sprintf("🔍 Validating Rule %d: %s", i+1, name)))
		fmt.Fprintln(w, "   ✓ Rule validated")
	}
	fmt.Fprintln(w)

	if len(report.Issues) > 0 {
		fmt.Fprintln(w, errorText("❌ VALIDATION FAILED"))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Issues found:")
		for _, issue := range report.Issues {
			fmt.Fprintf(w, "   ❌ %s\n", issue)
		}
		fmt.Fprintln(w)
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintln(w, warningText("⚠️  Warnings:"))
		for _, warning := range report.Warnings {
			fmt.Fprintf(w, "   ⚠️  %s\n", warning)
		}
		fmt.Fprintln(w)
	}

	switch {
	case report.OK() && len(report.Warnings) == 0:
		fmt.Fprintln(w, successText("✅ Configuration is valid with no issues!"))
	case report.OK():
		fmt.Fprintln(w, successText("✅ Configuration is valid (with warnings)"))
	}

	return report.OK()
}
