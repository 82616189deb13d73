// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package terminal

import "os"

// EnableVirtualTerminal is a no-op outside Windows; every supported Unix
// terminal interprets ANSI escape sequences natively.
func EnableVirtualTerminal(_ *os.File) error {
	return nil
}
