package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/recera/netsketch/cmd/netsketch/internal/config"
	"github.com/recera/netsketch/cmd/netsketch/internal/ui"
	"github.com/recera/netsketch/pkg/topology"
)

func newEditCommand() *cobra.Command {
	var exportDir string

	cmd := &cobra.Command{
		Use:   "edit [dir]",
		Short: "Open the interactive diagram editor",
		Long: `Opens the terminal editor. Configuration is read from netsketch.yaml in
the given directory (default: current directory); a missing file means
defaults. Mouse support requires a terminal that reports mouse events.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			if exportDir != "" {
				cfg.ExportDir = exportDir
			}

			opts := ui.Options{
				ExportDir:   cfg.ExportDir,
				GridStep:    cfg.Canvas.GridStep,
				ShowGrid:    cfg.Canvas.ShowGrid == nil || *cfg.Canvas.ShowGrid,
				AccentColor: cfg.Canvas.AccentColor,
			}

			// The session state is constructed here and handed to the model;
			// nothing else holds a reference.
			model := ui.NewModel(topology.NewViewState(), opts)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run editor: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&exportDir, "export-dir", "o", "", "directory for exported diagrams (overrides config)")

	return cmd
}
