// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"os"
	"sync"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestDetectColors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		tty  bool
		want bool
	}{
		{"tty no env", nil, true, true},
		{"pipe no env", nil, false, false},
		{"NO_COLOR wins over tty", map[string]string{"NO_COLOR": "1"}, true, false},
		{"NO_COLOR wins over force", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, true, false},
		{"CLICOLOR_FORCE on pipe", map[string]string{"CLICOLOR_FORCE": "1"}, false, true},
		{"CLICOLOR_FORCE=0 ignored", map[string]string{"CLICOLOR_FORCE": "0"}, false, false},
		{"FORCE_COLOR on pipe", map[string]string{"FORCE_COLOR": "true"}, false, true},
		{"CLICOLOR=0 on tty", map[string]string{"CLICOLOR": "0"}, true, false},
		{"CLICOLOR=1 on pipe", map[string]string{"CLICOLOR": "1"}, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			getenv := func(k string) string { return tc.env[k] }
			isTTY := func() bool { return tc.tty }
			assert.Equal(t, tc.want, detectColors(getenv, isTTY))
		})
	}
}

func TestForceColorsEnabled(t *testing.T) {
	ForceColorsEnabled(true)
	assert.True(t, ColorsEnabled())

	ForceColorsEnabled(false)
	assert.False(t, ColorsEnabled())
	assert.Equal(t, termenv.Ascii, GetColorProfile())
}

// TestForceColorsEnabled_Concurrent runs readers against a writer.
// Run with: go test -race ./internal/terminal/
func TestForceColorsEnabled_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			ForceColorsEnabled(i%2 == 0)
		}(i)
		go func() {
			defer wg.Done()
			_ = ColorsEnabled()
		}()
	}
	wg.Wait()
}

func TestWidthOf_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "width")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	assert.Equal(t, DefaultTerminalWidth, WidthOf(f))
	assert.Equal(t, DefaultTerminalWidth, WidthOf(nil))
	assert.False(t, IsTerminal(f))
	assert.False(t, IsTerminal(nil))
}

func TestEnableVirtualTerminal_NonConsole(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "vt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	assert.NoError(t, EnableVirtualTerminal(f))
	assert.NoError(t, EnableVirtualTerminal(nil))
}

func TestProfileName(t *testing.T) {
	assert.Equal(t, "ascii", ProfileName(termenv.Ascii))
	assert.Equal(t, "ansi", ProfileName(termenv.ANSI))
	assert.Equal(t, "ansi256", ProfileName(termenv.ANSI256))
	assert.Equal(t, "truecolor", ProfileName(termenv.TrueColor))
}
