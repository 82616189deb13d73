// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jeranaias/tikibar/internal/styles"
	"github.com/jeranaias/tikibar/internal/terminal"
)

// init configures lipgloss to follow NO_COLOR, FORCE_COLOR and TTY
// detection.
func init() {
	lipgloss.SetColorProfile(terminal.GetColorProfile())
}

var (
	// TitleStyle is used for command titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	// SectionStyle is used for section headers
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")). // White
			MarginTop(1)

	// LabelStyle is used for left-aligned names
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Light gray
			Width(12)

	// DimStyle is used for secondary information
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")) // Dim gray
)

// previewFractions are the completion points each bar is shown at.
var previewFractions = []float64{0, 0.1, 0.25, 0.5, 0.75, 1}

const previewWidth = 12

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "Print every preset bar, spinner and template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStyles(cmd.OutOrStdout())
		},
	}
}

func printStyles(w io.Writer) error {
	fmt.Fprintln(w, SectionStyle.Render("Bars"))
	for _, name := range styles.BarNames() {
		b, err := styles.Bar(name)
		if err != nil {
			return err
		}
		if b, err = b.Resize(previewWidth); err != nil {
			return err
		}
		frames := make([]string, len(previewFractions))
		for i, f := range previewFractions {
			frames[i] = "▕" + b.FrameFor(f) + "▏"
		}
		fmt.Fprintf(w, "%s %s\n", LabelStyle.Render(name), strings.Join(frames, " "))
	}

	fmt.Fprintln(w, SectionStyle.Render("Spinners"))
	for _, name := range styles.SpinnerNames() {
		s, err := styles.Spinner(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s %s\n", LabelStyle.Render(name),
			strings.Join(s.States(), " "), DimStyle.Render("done: "+s.Finish()))
	}

	fmt.Fprintln(w, SectionStyle.Render("Templates"))
	for _, name := range styles.TemplateNames() {
		src, err := styles.TemplateSource(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s\n", LabelStyle.Render(name), src)
	}
	return nil
}
