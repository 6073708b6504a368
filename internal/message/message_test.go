// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnsiMessage_Wrap(t *testing.T) {
	ts := NewTerminalString(0)
	ts.Styled(SGRBold, "--name", true).Word("VALUE")
	m := NewAnsiMessage(ts)

	assert.Contains(t, m.Wrap(0, 0, true), SGRBold)
	assert.Equal(t, "--name VALUE", m.String())
}

func TestWarnMessage_Wrap(t *testing.T) {
	ts := NewTerminalString(0)
	ts.Word("--old").Word("is").Word("deprecated")
	m := NewWarnMessage(ts)

	assert.Equal(t, "--old is deprecated", m.String())
	assert.Equal(t, "--old is deprecated", m.Wrap(0, 0, false))
}

func TestErrorMessage_HasNoBuiltInPrefix(t *testing.T) {
	ts := NewTerminalString(0)
	ts.Word("Option").Word("-f").Word("requires").Word("-s").Word("=").Word("'abc'.")
	m := NewErrorMessage(ts)

	out := m.String()
	assert.Equal(t, "Option -f requires -s = 'abc'.", out)
	assert.NotContains(t, out, "Error:")
	assert.NotContains(t, out, "error:")
}

func TestCompletionMessage_JoinsWithNewlines(t *testing.T) {
	m := NewCompletionMessage([]string{"--alpha", "--beta", "--gamma"})
	assert.Equal(t, "--alpha\n--beta\n--gamma", m.String())
	// width and styling are irrelevant to completion output.
	assert.Equal(t, m.String(), m.Wrap(0, 40, true))
}

func TestCompletionMessage_Empty(t *testing.T) {
	m := NewCompletionMessage(nil)
	assert.Equal(t, "", m.String())
}

func TestJsonMessage_Wrap(t *testing.T) {
	m := NewJsonMessage(map[string]any{"code": "ERR_UNKNOWN_OPTION", "option": "--nope"})
	out := m.String()
	assert.Contains(t, out, `"code": "ERR_UNKNOWN_OPTION"`)
	assert.Contains(t, out, `"option": "--nope"`)
	assert.Equal(t, out, m.Wrap(0, 0, true))
}

func TestJsonMessage_MarshalFailureFallsBackToEmptyObject(t *testing.T) {
	m := NewJsonMessage(make(chan int))
	assert.Equal(t, "{}", m.String())
}

func TestMessage_SatisfiesInterface(t *testing.T) {
	var _ Message = (*AnsiMessage)(nil)
	var _ Message = (*WarnMessage)(nil)
	var _ Message = (*ErrorMessage)(nil)
	var _ Message = (*CompletionMessage)(nil)
	var _ Message = (*JsonMessage)(nil)
}
