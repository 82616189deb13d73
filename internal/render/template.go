// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"regexp"
	"strings"
)

// =============================================================================
// KEYS AND VARIABLES
// =============================================================================

// Key names a template variable.
type Key string

const (
	KeyBar     Key = "bar"
	KeySpinner Key = "spinner"
	KeyPos     Key = "pos"
	KeyLen     Key = "len"
	KeyMsg     Key = "msg"
	KeyPrefix  Key = "prefix"
	KeyETA     Key = "eta"
	KeyPct     Key = "pct"
)

var knownKeys = map[Key]bool{
	KeyBar: true, KeySpinner: true, KeyPos: true, KeyLen: true,
	KeyMsg: true, KeyPrefix: true, KeyETA: true, KeyPct: true,
}

// Keys returns every key a template may reference.
func Keys() []Key {
	return []Key{KeyBar, KeySpinner, KeyPos, KeyLen, KeyMsg, KeyPrefix, KeyETA, KeyPct}
}

// Vars resolves template keys to their current values. A key without a
// resolver renders as nothing.
type Vars map[Key]func() any

// =============================================================================
// COMPILATION
// =============================================================================

const specVerbs = "bBdiouxXeEfgGcsvq"

var (
	// %<key.mods>spec: the style suffix is only recognised before a valid spec
	styledFormat = regexp.MustCompile(`%<([^.>]+)\.([^>]+)>([-+# 0]*\d*(?:\.\d+)?[` + specVerbs + `])`)
	// %{key.mods}
	styledReplace = regexp.MustCompile(`%\{([^.}]+)\.([^}]+)\}`)
	// the spec following a %<key>
	formatSpec = regexp.MustCompile(`^[-+# 0]*\d*(?:\.\d+)?[` + specVerbs + `]`)
)

type segmentKind uint8

const (
	segLiteral segmentKind = iota
	segFormat
	segBrace
)

type verbKind uint8

const (
	verbAny verbKind = iota
	verbInt
	verbFloat
	verbString
)

type segment struct {
	kind    segmentKind
	literal string
	key     Key
	spec    string
	verb    verbKind
}

// Template is a compiled format string. Styling is resolved once, at
// compile time; Render only substitutes values.
type Template struct {
	source   string
	compiled string
	segments []segment
	keys     []Key
}

// CompileTemplate resolves the styled placeholders in source and parses the
// result into segments.
func CompileTemplate(source string) (*Template, error) {
	compiled, err := preprocess(source)
	if err != nil {
		return nil, err
	}
	segments, err := parseSegments(compiled)
	if err != nil {
		return nil, err
	}

	t := &Template{source: source, compiled: compiled, segments: segments}
	seen := make(map[Key]bool)
	for _, seg := range segments {
		if seg.kind != segLiteral && !seen[seg.key] {
			seen[seg.key] = true
			t.keys = append(t.keys, seg.key)
		}
	}
	return t, nil
}

// MustCompileTemplate is CompileTemplate for static tables; it panics on
// error.
func MustCompileTemplate(source string) *Template {
	t, err := CompileTemplate(source)
	if err != nil {
		panic(err)
	}
	return t
}

// preprocess rewrites every styled placeholder into its unstyled form
// wrapped in the style's escape codes. Escaped %% sequences are left
// alone.
func preprocess(source string) (string, error) {
	var firstErr error
	wrap := func(pattern *regexp.Regexp, rebuild func([]string) string) func(string) string {
		return func(match string) string {
			m := pattern.FindStringSubmatch(match)
			style, err := ParseStyle(m[2])
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return match
			}
			return style.Format(rebuild(m))
		}
	}

	formatFn := wrap(styledFormat, func(m []string) string { return "%<" + m[1] + ">" + m[3] })
	replaceFn := wrap(styledReplace, func(m []string) string { return "%{" + m[1] + "}" })

	parts := strings.Split(source, "%%")
	for i, part := range parts {
		part = styledFormat.ReplaceAllStringFunc(part, formatFn)
		parts[i] = styledReplace.ReplaceAllStringFunc(part, replaceFn)
	}
	if firstErr != nil {
		return "", firstErr
	}
	return strings.Join(parts, "%%"), nil
}

func parseSegments(s string) ([]segment, error) {
	var (
		segments []segment
		lit      strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, segment{kind: segLiteral, literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		j := strings.IndexByte(s[i:], '%')
		if j < 0 {
			lit.WriteString(s[i:])
			break
		}
		lit.WriteString(s[i : i+j])
		i += j

		if i+1 >= len(s) {
			return nil, configErr("template", s[i:], "dangling %")
		}

		switch s[i+1] {
		case '%':
			lit.WriteByte('%')
			i += 2

		case '<':
			end := strings.IndexByte(s[i+2:], '>')
			if end < 0 {
				return nil, configErr("template", s[i:], "unterminated %<")
			}
			key := Key(s[i+2 : i+2+end])
			if !knownKeys[key] {
				return nil, configErr("template", string(key), "unknown key")
			}
			rest := s[i+3+end:]
			spec := formatSpec.FindString(rest)
			if spec == "" {
				return nil, configErr("template", s[i:min(len(s), i+3+end+1)], "missing format conversion")
			}
			flush()
			verb, kind := normalizeVerb(spec[len(spec)-1])
			segments = append(segments, segment{
				kind: segFormat,
				key:  key,
				spec: "%" + spec[:len(spec)-1] + string(verb),
				verb: kind,
			})
			i += 3 + end + len(spec)

		case '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return nil, configErr("template", s[i:], "unterminated %{")
			}
			key := Key(s[i+2 : i+2+end])
			if !knownKeys[key] {
				return nil, configErr("template", string(key), "unknown key")
			}
			flush()
			segments = append(segments, segment{kind: segBrace, key: key})
			i += 3 + end

		default:
			return nil, configErr("template", s[i:i+2], "unsupported directive, use %<key>spec or %{key}")
		}
	}
	flush()
	return segments, nil
}

// normalizeVerb maps printf conversions Go lacks onto their Go equivalents
// and classifies the result.
func normalizeVerb(c byte) (byte, verbKind) {
	switch c {
	case 'i', 'u':
		c = 'd'
	case 'B':
		c = 'b'
	}
	switch c {
	case 'b', 'd', 'o', 'x', 'X', 'c':
		return c, verbInt
	case 'e', 'E', 'f', 'g', 'G':
		return c, verbFloat
	case 's', 'q':
		return c, verbString
	default:
		return c, verbAny
	}
}

// =============================================================================
// RENDERING
// =============================================================================

// Render substitutes vars into the template.
func (t *Template) Render(vars Vars) string {
	var sb strings.Builder
	sb.Grow(len(t.compiled) + 64)

	for _, seg := range t.segments {
		if seg.kind == segLiteral {
			sb.WriteString(seg.literal)
			continue
		}

		fn := vars[seg.key]
		if fn == nil {
			continue
		}
		v := fn()
		if v == nil {
			continue
		}

		if seg.kind == segBrace {
			fmt.Fprint(&sb, v)
			continue
		}
		fmt.Fprintf(&sb, seg.spec, coerce(v, seg.verb))
	}
	return sb.String()
}

// coerce converts v so the conversion verb accepts it, the way printf
// implementations that truncate floats for %d behave.
func coerce(v any, kind verbKind) any {
	switch kind {
	case verbInt:
		switch n := v.(type) {
		case float64:
			return int64(n)
		case float32:
			return int64(n)
		}
	case verbFloat:
		switch n := v.(type) {
		case int:
			return float64(n)
		case int64:
			return float64(n)
		case uint64:
			return float64(n)
		}
	case verbString:
		if _, ok := v.(string); !ok {
			return fmt.Sprint(v)
		}
	}
	return v
}

// Source returns the template as written.
func (t *Template) Source() string { return t.source }

// Compiled returns the template with styling resolved into escape codes.
// Compiling the same source with the same color setting always yields the
// same string.
func (t *Template) Compiled() string { return t.compiled }

// Keys returns the distinct keys the template references, in order of
// first use.
func (t *Template) Keys() []Key { return append([]Key(nil), t.keys...) }

// String returns the template source.
func (t *Template) String() string { return t.source }
