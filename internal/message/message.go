// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package message

import (
	"encoding/json"
	"strings"
)

// Message is a tagged rendering unit produced by help, usage, error, and
// completion output, with variants for plain styled text, completion word
// lists, and JSON payloads.
type Message interface {
	// Wrap renders the message for a terminal currentCol columns into the
	// current line, wrapping to width (0 disables wrapping) and emitting
	// ANSI styling only when emitStyles is true.
	Wrap(currentCol, width int, emitStyles bool) string

	// String renders the message with no wrap width and no styling, the
	// form used when writing to a non-terminal or capturing for a test.
	String() string
}

// AnsiMessage is ordinary styled output: help text, usage lines, hints.
type AnsiMessage struct {
	Text *TerminalString
}

func NewAnsiMessage(t *TerminalString) *AnsiMessage { return &AnsiMessage{Text: t} }

func (m *AnsiMessage) Wrap(currentCol, width int, emitStyles bool) string {
	return m.Text.WrapString(currentCol, width, emitStyles)
}

func (m *AnsiMessage) String() string {
	return m.Text.WrapString(0, 0, false)
}

// WarnMessage is a deprecation or soft-validation notice. It renders like
// AnsiMessage; the distinct type lets callers route it to stderr or filter
// it by kind without string-sniffing the content.
type WarnMessage struct {
	Text *TerminalString
}

func NewWarnMessage(t *TerminalString) *WarnMessage { return &WarnMessage{Text: t} }

func (m *WarnMessage) Wrap(currentCol, width int, emitStyles bool) string {
	return m.Text.WrapString(currentCol, width, emitStyles)
}

func (m *WarnMessage) String() string {
	return m.Text.WrapString(0, 0, false)
}

// ErrorMessage is a parse failure. Unlike the other styled variants its
// String form never prepends a prefix (no "Error:" is baked in here); the
// caller decides whether and how to label it before display.
type ErrorMessage struct {
	Text *TerminalString
}

func NewErrorMessage(t *TerminalString) *ErrorMessage { return &ErrorMessage{Text: t} }

func (m *ErrorMessage) Wrap(currentCol, width int, emitStyles bool) string {
	return m.Text.WrapString(currentCol, width, emitStyles)
}

func (m *ErrorMessage) String() string {
	return m.Text.WrapString(0, 0, false)
}

// CompletionMessage wraps a list of shell-completion candidate words. It
// never carries styling: the tokens are consumed by a completion script,
// not read by a person, so Wrap ignores emitStyles and width and always
// joins with newlines.
type CompletionMessage struct {
	Candidates []string
}

func NewCompletionMessage(candidates []string) *CompletionMessage {
	return &CompletionMessage{Candidates: candidates}
}

func (m *CompletionMessage) Wrap(_, _ int, _ bool) string {
	return strings.Join(m.Candidates, "\n")
}

func (m *CompletionMessage) String() string {
	return strings.Join(m.Candidates, "\n")
}

// JsonMessage wraps a machine-readable value, used by the "json" help and
// error output formats. Wrap ignores width and emitStyles; the value is
// marshaled with indentation for readability either way.
type JsonMessage struct {
	Value any
}

func NewJsonMessage(v any) *JsonMessage { return &JsonMessage{Value: v} }

func (m *JsonMessage) Wrap(_, _ int, _ bool) string {
	return m.String()
}

func (m *JsonMessage) String() string {
	b, err := json.MarshalIndent(m.Value, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
