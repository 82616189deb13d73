// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tikibar/internal/terminal"
)

func TestParseStyle(t *testing.T) {
	terminal.ForceColorsEnabled(true)

	tests := []struct {
		dotted string
		want   string
	}{
		{"red", "\x1b[31mX\x1b[0m"},
		{"on_blue", "\x1b[44mX\x1b[0m"},
		{"bold", "\x1b[1mX\x1b[0m"},
		{"cyan.dim", "\x1b[36m\x1b[2mX\x1b[0m"},
		{"bold.red.on_white", "\x1b[31m\x1b[47m\x1b[1mX\x1b[0m"},
		{"red.green", "\x1b[32mX\x1b[0m"},
		{"bold.bold.underlined", "\x1b[1m\x1b[4mX\x1b[0m"},
		{"black.on_black.hidden.reverse.blink.italic", "\x1b[30m\x1b[40m\x1b[8m\x1b[7m\x1b[5m\x1b[3mX\x1b[0m"},
		{"", "X"},
	}

	for _, tc := range tests {
		t.Run(tc.dotted, func(t *testing.T) {
			s, err := ParseStyle(tc.dotted)
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.Format("X"))
		})
	}
}

func TestParseStyle_Invalid(t *testing.T) {
	for _, dotted := range []string{"purple", "red.sparkly", "on_purple", "red..bold", "on_", "Red"} {
		t.Run(dotted, func(t *testing.T) {
			_, err := ParseStyle(dotted)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfig))

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "style", cfgErr.Component)
		})
	}
}

func TestStyleFormat_ColorsDisabled(t *testing.T) {
	terminal.ForceColorsEnabled(false)
	defer terminal.ForceColorsEnabled(true)

	s := MustParseStyle("red.bold")
	assert.Equal(t, "plain", s.Format("plain"))
	assert.False(t, s.IsZero())
	assert.Equal(t, "\x1b[31m\x1b[1m", s.Prefix(), "prefix ignores the color flag")
}

func TestMustParseStyle_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseStyle("nope") })
}

func TestNames(t *testing.T) {
	for _, c := range ColorNames() {
		_, err := ParseStyle(c)
		assert.NoError(t, err, c)
		_, err = ParseStyle("on_" + c)
		assert.NoError(t, err, "on_"+c)
	}
	for _, a := range AttributeNames() {
		_, err := ParseStyle(a)
		assert.NoError(t, err, a)
	}
}
