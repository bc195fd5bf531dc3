package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"copycheck/internal/config"
	"copycheck/internal/match"
	"copycheck/internal/tester"
)

// NewPatternsCmd creates the patterns command
func NewPatternsCmd() *cobra.Command {
	var (
		configFile string
		filesFrom  string
		excludes   []string
	)

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Test which files match your copy rules",
		Long: `Patterns classifies candidate file paths against a rule set and reports
each one as matched, excluded, or skipped. With no flags it runs against a
built-in sample rule set and file list; pass --config and --files-from to
test a real configuration. The report is advisory and always exits 0.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rules := tester.DefaultRules()
			exclusions := tester.DefaultExclusions()
			files := tester.DefaultFiles()

			if configFile != "" {
				cfg, err := config.Load(configFile)
				if err != nil {
					fmt.Println(errorText(fmt.Sprintf("Error loading config: %v", err)))
					os.Exit(1)
				}
				rules = cfg.CopyRules
				exclusions = nil
			}
			if len(excludes) > 0 {
				exclusions = excludes
			}
			if filesFrom != "" {
				var err error
				files, err = readFileList(filesFrom)
				if err != nil {
					fmt.Println(errorText(fmt.Sprintf("Error reading file list: %v", err)))
					os.Exit(1)
				}
			}

			m, err := match.New(rules, exclusions)
			if err != nil {
				fmt.Println(errorText(fmt.Sprintf("Error compiling rules: %v", err)))
				os.Exit(1)
			}

			tester.Run(os.Stdout, m, files)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "load rules from a copier config instead of the built-in sample set")
	cmd.Flags().StringVarP(&filesFrom, "files-from", "f", "", "read candidate paths from a file (one per line) instead of the built-in list")
	cmd.Flags().StringArrayVarP(&excludes, "exclude", "e", nil, "exclusion regex checked before rule evaluation (repeatable)")

	return cmd
}

// readFileList reads newline-separated candidate paths, skipping blanks and
// # comments.
func readFileList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var files []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return files, nil
}
