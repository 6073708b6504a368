// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package message builds styled, word-wrapped terminal output for help,
// usage, errors, warnings, and completion listings, as an append-only
// token stream that tracks column position and emits ANSI control
// sequences only when the host has enabled them.
package message

import "strings"

type segmentKind int

const (
	segWord segmentKind = iota
	segBreak
	segSeq
)

// segment is one appended fragment of a TerminalString.
type segment struct {
	kind      segmentKind
	text      string
	glueLeft  bool // no space before this segment (close)
	glueRight bool // no space after this segment (open)
}

// TerminalString is an append-only list of styled tokens. The zero value
// is ready to use.
type TerminalString struct {
	segments    []segment
	indent      int
	rightAlign  bool
}

// NewTerminalString returns an empty TerminalString indented to col.
func NewTerminalString(indent int) *TerminalString {
	return &TerminalString{indent: indent}
}

// Indent reports the string's indentation column.
func (t *TerminalString) Indent() int { return t.indent }

// SetIndent changes the indentation column.
func (t *TerminalString) SetIndent(col int) *TerminalString {
	t.indent = col
	return t
}

// RightAlign marks the string to be right-padded to the wrap width on
// every line it produces.
func (t *TerminalString) RightAlign(on bool) *TerminalString {
	t.rightAlign = on
	return t
}

// Word appends a word, space-separated from whatever precedes it unless
// glued via Open/Close.
func (t *TerminalString) Word(s string) *TerminalString {
	if s == "" {
		return t
	}
	t.segments = append(t.segments, segment{kind: segWord, text: s})
	return t
}

// Open appends a word that glues to the *next* appended word (no space
// between them), e.g. building "(-a" before "|-b)".
func (t *TerminalString) Open(s string) *TerminalString {
	t.segments = append(t.segments, segment{kind: segWord, text: s, glueRight: true})
	return t
}

// Close appends a word that glues to the *previous* appended word (no
// space before it), e.g. appending ")" after "-b".
func (t *TerminalString) Close(s string) *TerminalString {
	t.segments = append(t.segments, segment{kind: segWord, text: s, glueLeft: true})
	return t
}

// Break forces a line break regardless of available width.
func (t *TerminalString) Break() *TerminalString {
	t.segments = append(t.segments, segment{kind: segBreak})
	return t
}

// Seq appends a raw (zero-width) control sequence that never forces a word
// boundary: it joins the word before it, or, when nothing precedes it on
// the line, the word after it.
func (t *TerminalString) Seq(esc string) *TerminalString {
	if esc == "" {
		return t
	}
	t.segments = append(t.segments, segment{kind: segSeq, text: esc, glueLeft: true, glueRight: true})
	return t
}

// Merge appends other's segments to t without an implied separator
// between them (the first appended segment of other still obeys its own
// glue flags).
func (t *TerminalString) Merge(other *TerminalString) *TerminalString {
	if other == nil {
		return t
	}
	t.segments = append(t.segments, other.segments...)
	return t
}

// Formatter renders a structured token (the argument captured by a %
// format specifier in Split) into the string being built.
type Formatter func(t *TerminalString, token string)

// Split appends text split on whitespace: a blank line starts a new
// paragraph (forced break), and a line beginning with "-", "*", or an
// ordinal like "1." starts a new list item (also a forced break). A
// format specifier (e.g. "%s", "%n") in text invokes format(t, specifier)
// to append a structured fragment instead of a literal word; when format
// is nil, specifiers are appended verbatim.
func (t *TerminalString) Split(text string, format Formatter) *TerminalString {
	paragraphs := strings.Split(text, "\n\n")
	for pi, para := range paragraphs {
		if pi > 0 {
			t.Break()
		}
		lines := strings.Split(para, "\n")
		for li, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if li > 0 && isListPrefix(trimmed) {
				t.Break()
			}
			fields := strings.Fields(trimmed)
			for _, f := range fields {
				if format != nil && isFormatSpecifier(f) {
					format(t, f)
					continue
				}
				t.Word(f)
			}
		}
	}
	return t
}

func isListPrefix(line string) bool {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return true
	}
	// ordinal list prefix like "1." or "12."
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && i < len(line) && line[i] == '.'
}

func isFormatSpecifier(tok string) bool {
	return len(tok) == 2 && tok[0] == '%' && tok[1] != '%'
}

// PlainText returns the concatenation of every word, space-separated
// except where Open/Close glue joins two words, ignoring breaks and
// styling — used by error messages rendered without a wrap width and by
// tests asserting textual content.
func (t *TerminalString) PlainText() string {
	var b strings.Builder
	first := true
	prevGlueRight := false
	for _, seg := range t.segments {
		if seg.kind != segWord {
			continue
		}
		if !first && !seg.glueLeft && !prevGlueRight {
			b.WriteByte(' ')
		}
		b.WriteString(seg.text)
		first = false
		prevGlueRight = seg.glueRight
	}
	return b.String()
}
