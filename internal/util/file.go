// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriteFile replaces path with data. Readers see either the previous
// contents or all of data, never a partial write. Missing parent
// directories are created.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", target, err)
	}

	// The staging file shares the target's directory so Rename cannot
	// cross filesystems.
	staged, err := stage(filepath.Dir(target), filepath.Base(target), data, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(staged, target); err != nil {
		return errors.Join(fmt.Errorf("replace %s: %w", target, err), os.Remove(staged))
	}
	return nil
}

// stage writes data to a new hidden file in dir and returns its name. The
// file is synced and closed with perm applied; on error nothing is left
// behind.
func stage(dir, base string, data []byte, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}
	name := f.Name()

	_, werr := f.Write(data)
	if werr == nil {
		werr = f.Sync()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Chmod(name, perm)
	}
	if werr != nil {
		return "", errors.Join(fmt.Errorf("write staging file: %w", werr), os.Remove(name))
	}
	return name, nil
}
