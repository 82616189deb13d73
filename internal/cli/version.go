// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jeranaias/tikibar/internal/terminal"
)

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", TitleStyle.Render("tikibar"), info.Version)
			fmt.Fprintf(out, "%s %s\n", LabelStyle.Render("Git commit:"), info.GitCommit)
			fmt.Fprintf(out, "%s %s\n", LabelStyle.Render("Build date:"), info.BuildDate)
			fmt.Fprintf(out, "%s %s %s/%s\n", LabelStyle.Render("Go:"), runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "%s %s\n", LabelStyle.Render("Colors:"), terminal.ProfileName(terminal.GetColorProfile()))
			return nil
		},
	}
}
