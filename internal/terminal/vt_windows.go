// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// EnableVirtualTerminal switches the console behind f into VT processing
// mode so cursor-up and clear-to-EOL sequences are interpreted rather than
// printed. Files that are not consoles are left alone.
func EnableVirtualTerminal(f *os.File) error {
	if f == nil {
		return nil
	}
	handle := windows.Handle(f.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		// Not a console (redirected to a file or pipe)
		return nil
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return nil
	}
	if err := windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		return fmt.Errorf("failed to enable virtual terminal processing: %w", err)
	}
	return nil
}
