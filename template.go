// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import (
	"strconv"
	"strings"
)

// partKind distinguishes a template Part's two forms.
type partKind uint8

const (
	partLiteral partKind = iota
	partHole
)

// Part is one piece of a parsed Template: either literal text, or a named
// hole with optional format flags ("{name[:format_flags]}").
type Part struct {
	kind    partKind
	literal string
	name    string
	flags   string
}

// Template is a parsed message template: a finite sequence of literal text
// segments and named holes. Parse builds one from its source string; the
// package-level facades (Info, Span, Metric, ...) call Parse on every call
// and nothing caches the result. Render drives a single pass over Parts
// against a Props source.
type Template struct {
	src   string
	parts []Part
}

// Parse splits src into literal and hole Parts. A malformed hole (an
// unterminated '{') is treated as literal text from that point on, matching
// the original's lenient parser.
func Parse(src string) Template {
	parts := make([]Part, 0, 4)
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, Part{kind: partLiteral, literal: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '{' {
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '}' {
					end = j
					break
				}
			}
			if end == -1 {
				lit.WriteRune(c)
				continue
			}
			flush()
			hole := string(runes[i+1 : end])
			name, flags, _ := strings.Cut(hole, ":")
			parts = append(parts, Part{kind: partHole, name: name, flags: flags})
			i = end
			continue
		}
		lit.WriteRune(c)
	}
	flush()

	return Template{src: src, parts: parts}
}

// Parts returns the parsed sequence of literal and hole segments.
func (t Template) Parts() []Part { return t.parts }

// AsLiteral returns the template's source text when it contains no holes at
// all (a fast path so a pure-literal message doesn't need a Props lookup).
func (t Template) AsLiteral() (string, bool) {
	for _, p := range t.parts {
		if p.kind == partHole {
			return "", false
		}
	}
	return t.src, true
}

// Render produces the rendered message by walking Parts in order: literal
// segments are copied verbatim, holes are resolved against props by name and
// formatted per the hole's flags. A missing key renders as the literal
// "`name`".
func (t Template) Render(props Props) string {
	if lit, ok := t.AsLiteral(); ok {
		return lit
	}

	var out strings.Builder
	for _, p := range t.parts {
		switch p.kind {
		case partLiteral:
			out.WriteString(p.literal)
		case partHole:
			v, ok := Get(props, p.name)
			if !ok {
				out.WriteByte('`')
				out.WriteString(p.name)
				out.WriteByte('`')
				continue
			}
			out.WriteString(formatHole(v, p.flags))
		}
	}
	return out.String()
}

// formatHole renders v according to a hole's format flags. The empty flag and
// "?" both render the value's Display form (Value.String); "?" has no
// separate debug rendering. A precision such as ".2" (a bare number is read
// as a precision too) formats a value ToFloat64 accepts with
// strconv.FormatFloat; there is no width handling, and any other flag falls
// back to the Display form.
func formatHole(v Value, flags string) string {
	switch {
	case flags == "?":
		return v.String()
	case flags == "":
		return v.String()
	default:
		if f, ok := v.ToFloat64(); ok {
			if prec, err := strconv.Atoi(strings.TrimPrefix(flags, ".")); err == nil {
				return strconv.FormatFloat(f, 'f', prec, 64)
			}
		}
		return v.String()
	}
}

// String returns the template's original source text.
func (t Template) String() string { return t.src }
