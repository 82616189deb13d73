// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles holds the preset bars, spinners and templates for tikibar.

The presets are static data built once at init. Look them up by name
through the registry functions, which are case-insensitive and return a
*render.ConfigError for unknown names:

	bar, err := styles.Bar("fine")
	spin, err := styles.Spinner("braille")
	tmpl, err := styles.Template("full")

# Bars

Every bar ramp runs background, intermediates (low to high), fill:

	default   -~+=#
	simple     =
	box        ╡═
	line       ┤─
	fill      ░█
	fine         ▏▎▍▌▋▊▉█
	rough      █
	fade        ░▒▓█
	vertical    ▁▂▃▄▅▆▇█
	block       ▖▌▛█
	braille6   ⠄⠆⠇⠗⠷⠿
	braille8   ⡀⡄⡆⡇⡗⡷⣷⣿

Preset bars are DefaultWidth cells wide; Progress resizes them.

# Spinners

default, bubble, braille, cycle, twirl and bounce (mirrored), plus the
ASCII-safe line, dots, pulse and arrow.

# Templates

	default   %<bar.cyan>s %<pos>d/%<len>d
	full      %<bar>s %<spinner>s %<pos>d/%<len>d %<eta>s %<msg>s
	spinner   %<spinner>s %<msg>s
	coloured  %<bar.cyan.dim>s %<pos>d/%<len>d

Templates are compiled on lookup rather than at init so that the color
decision in effect at the time applies.
*/
package styles
