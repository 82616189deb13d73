// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jeranaias/tikibar/internal/terminal"
)

// BuildInfo is set by main from linker flags.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

// NewRootCmd builds the tikibar command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	var color string

	root := &cobra.Command{
		Use:   "tikibar",
		Short: "Concurrent terminal progress indicators",
		Long: `tikibar draws any number of progress bars and spinners, updated from
concurrent goroutines, in a region at the bottom of the terminal while
ordinary output scrolls above them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyColorMode(color)
		},
	}
	root.PersistentFlags().StringVar(&color, "color", "auto", "color output: auto, always or never")

	root.AddCommand(newConfigCmd())
	root.AddCommand(newDemoCmd())
	root.AddCommand(newStylesCmd())
	root.AddCommand(newVersionCmd(info))
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute(info BuildInfo) int {
	if err := NewRootCmd(info).Execute(); err != nil {
		return 1
	}
	return 0
}

// applyColorMode overrides color detection for "always" and "never".
func applyColorMode(mode string) error {
	switch mode {
	case "auto":
		return nil
	case "always":
		terminal.ForceColorsEnabled(true)
	case "never":
		terminal.ForceColorsEnabled(false)
	default:
		return fmt.Errorf("invalid --color %q, must be one of: auto, always, never", mode)
	}
	lipgloss.SetColorProfile(terminal.GetColorProfile())
	return nil
}
