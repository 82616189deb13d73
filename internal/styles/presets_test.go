// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tikibar/internal/render"
)

func TestBarPresets(t *testing.T) {
	names := BarNames()
	require.Len(t, names, 12)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			b, err := Bar(name)
			require.NoError(t, err)
			assert.Equal(t, DefaultWidth, b.Width())

			chars := b.Chars()
			assert.Equal(t, strings.Repeat(chars[0], DefaultWidth), b.Frame(0))
			assert.Equal(t, strings.Repeat(chars[len(chars)-1], DefaultWidth), b.Frame(b.Resolution()))
		})
	}
}

func TestSpinnerPresets(t *testing.T) {
	for _, name := range SpinnerNames() {
		t.Run(name, func(t *testing.T) {
			s, err := Spinner(name)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.Len(), 2)
			assert.NotEmpty(t, s.Finish())
		})
	}
}

func TestBounceIsMirrored(t *testing.T) {
	s, err := Spinner("bounce")
	require.NoError(t, err)
	assert.Equal(t, 9, s.Len())
	assert.Equal(t, "   - ", s.Frame(5))
}

func TestTemplatePresets(t *testing.T) {
	for _, name := range TemplateNames() {
		t.Run(name, func(t *testing.T) {
			tmpl, err := Template(name)
			require.NoError(t, err)
			assert.NotEmpty(t, tmpl.Keys())
		})
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	a, err := Bar("Fine")
	require.NoError(t, err)
	b, err := Bar("fine")
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = Spinner("BRAILLE")
	assert.NoError(t, err)
	_, err = TemplateSource("Full")
	assert.NoError(t, err)
}

func TestUnknownPreset(t *testing.T) {
	_, err := Bar("sparkly")
	assert.True(t, errors.Is(err, render.ErrConfig))

	_, err = Spinner("sparkly")
	var cfgErr *render.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "spinner", cfgErr.Component)
	assert.Equal(t, "sparkly", cfgErr.Value)

	_, err = Template("sparkly")
	assert.True(t, errors.Is(err, render.ErrConfig))
}
