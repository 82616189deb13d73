// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by tikibar packages.
//
//   - TruncateWidth: cut a string to a display width, CJK and emoji aware
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
