package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"copycheck/internal/log"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:     "copycheck",
		Short:   "Check copy-rule configurations before they bite",
		Long:    `Copycheck validates copier config files and simulates which files their patterns would copy, exclude, or silently skip.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(debug)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewPatternsCmd())

	return rootCmd
}
