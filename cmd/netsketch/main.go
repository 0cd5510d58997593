package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "netsketch",
		Short: "netsketch - sketch network topology diagrams in your terminal",
		Long: `netsketch is a terminal editor for sketching network topology diagrams:
drag device icons onto a canvas, arrange them with the mouse, and export the
layout as a versioned JSON document. A built-in preview server renders
exported diagrams as SVG with live reload.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	// Add commands
	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newServeCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
