// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"sort"
	"strings"

	"github.com/jeranaias/tikibar/internal/render"
)

// DefaultWidth is the width preset bars are built at.
const DefaultWidth = 30

// Default preset names.
const (
	DefaultBar      = "default"
	DefaultSpinner  = "default"
	DefaultTemplate = "default"
	SpinnerTemplate = "spinner"
)

// =============================================================================
// BAR PRESETS
// =============================================================================

var bars = map[string]*render.Bar{
	"default":  render.MustNewBarFromString(DefaultWidth, "-~+=#"),
	"simple":   render.MustNewBarFromString(DefaultWidth, " ="),
	"box":      render.MustNewBarFromString(DefaultWidth, " ╡═"),
	"line":     render.MustNewBarFromString(DefaultWidth, " ┤─"),
	"fill":     render.MustNewBarFromString(DefaultWidth, "░█"),
	"fine":     render.MustNewBarFromString(DefaultWidth, "   ▏▎▍▌▋▊▉█"),
	"rough":    render.MustNewBarFromString(DefaultWidth, " █"),
	"fade":     render.MustNewBarFromString(DefaultWidth, "  ░▒▓█"),
	"vertical": render.MustNewBarFromString(DefaultWidth, "  ▁▂▃▄▅▆▇█"),
	"block":    render.MustNewBarFromString(DefaultWidth, "  ▖▌▛█"),
	"braille6": render.MustNewBarFromString(DefaultWidth, " ⠄⠆⠇⠗⠷⠿"),
	"braille8": render.MustNewBarFromString(DefaultWidth, " ⡀⡄⡆⡇⡗⡷⣷⣿"),
}

// =============================================================================
// SPINNER PRESETS
// =============================================================================

var spinners = map[string]*render.Spinner{
	"default": render.MustNewSpinnerFromString(`\|/-`),
	"bubble":  render.MustNewSpinnerFromString(".oO*"),
	"braille": render.MustNewSpinnerFromString("⠁⠁⠉⠙⠚⠒⠂⠂⠒⠲⠴⠤⠄⠄⠤⠠⠠⠤⠦⠖⠒⠐⠐⠒⠓⠋⠉⠈⠈"),
	"cycle":   render.MustNewSpinnerFromString("⠁⠂⠄⡀⢀⠠⠐⠈"),
	"twirl":   render.MustNewSpinner([]string{"-", `\`, "|", "/", "-", " -", " /", " |", ` \`, " -"}),
	"bounce":  render.MustNewSpinner([]string{"-    ", " -   ", "  -  ", "   - ", "    -"}, render.WithMirror()),

	// ASCII-safe spinners for terminals without Unicode fonts
	"line":  render.MustNewSpinner([]string{"|", "/", "-", `\`}),
	"dots":  render.MustNewSpinner([]string{".  ", ".. ", "...", " ..", "  .", "   "}),
	"pulse": render.MustNewSpinner([]string{"( )", "(.)", "(o)", "(O)", "(o)", "(.)"}, render.WithFinishFrame("(*)")),
	"arrow": render.MustNewSpinner([]string{"<", "^", ">", "v"}),
}

// =============================================================================
// TEMPLATE PRESETS
// =============================================================================

var templates = map[string]string{
	"default":  "%<bar.cyan>s %<pos>d/%<len>d",
	"full":     "%<bar>s %<spinner>s %<pos>d/%<len>d %<eta>s %<msg>s",
	"spinner":  "%<spinner>s %<msg>s",
	"coloured": "%<bar.cyan.dim>s %<pos>d/%<len>d",
}

// =============================================================================
// REGISTRY
// =============================================================================

// Bar returns the preset bar called name.
func Bar(name string) (*render.Bar, error) {
	if b, ok := bars[strings.ToLower(name)]; ok {
		return b, nil
	}
	return nil, unknown("bar", name)
}

// Spinner returns the preset spinner called name.
func Spinner(name string) (*render.Spinner, error) {
	if s, ok := spinners[strings.ToLower(name)]; ok {
		return s, nil
	}
	return nil, unknown("spinner", name)
}

// TemplateSource returns the uncompiled source of the preset template
// called name.
func TemplateSource(name string) (string, error) {
	if src, ok := templates[strings.ToLower(name)]; ok {
		return src, nil
	}
	return "", unknown("template", name)
}

// Template compiles the preset template called name.
func Template(name string) (*render.Template, error) {
	src, err := TemplateSource(name)
	if err != nil {
		return nil, err
	}
	return render.CompileTemplate(src)
}

// BarNames returns the preset bar names, sorted.
func BarNames() []string { return sortedKeys(bars) }

// SpinnerNames returns the preset spinner names, sorted.
func SpinnerNames() []string { return sortedKeys(spinners) }

// TemplateNames returns the preset template names, sorted.
func TemplateNames() []string { return sortedKeys(templates) }

func unknown(component, name string) error {
	return &render.ConfigError{Component: component, Value: name, Reason: "unknown preset"}
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
