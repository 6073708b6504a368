// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package reqexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reqpkg "github.com/clargo/clargo/internal/require"
)

type fakeResolver struct {
	ids   map[string]string
	kinds map[string]ValueKind
}

func (f fakeResolver) ResolveID(name string) (string, bool) {
	id, ok := f.ids[name]
	return id, ok
}

func (f fakeResolver) ValueKind(id string) ValueKind {
	return f.kinds[id]
}

func newResolver() fakeResolver {
	return fakeResolver{
		ids: map[string]string{
			"-s":  "s",
			"-a":  "a",
			"-b":  "b",
			"-f1": "f1",
			"-f2": "f2",
			"-n":  "n",
			"-on": "on",
		},
		kinds: map[string]ValueKind{
			"s":  KindString,
			"n":  KindNumber,
			"on": KindBool,
		},
	}
}

type mapValues map[string]any

func (m mapValues) Value(id string) (any, bool) {
	v, ok := m[id]
	return v, ok
}

func (mapValues) Unique(string) bool { return false }

func TestParseAndCompile_NameOnly(t *testing.T) {
	expr, err := Parse("-a")
	require.NoError(t, err)
	req, err := Compile(expr, newResolver())
	require.NoError(t, err)
	assert.True(t, reqpkg.Eval(req, mapValues{"a": true}))
	assert.False(t, reqpkg.Eval(req, mapValues{}))
}

func TestParseAndCompile_ValueEquals(t *testing.T) {
	expr, err := Parse("-s = 'abc'")
	require.NoError(t, err)
	req, err := Compile(expr, newResolver())
	require.NoError(t, err)
	assert.True(t, reqpkg.Eval(req, mapValues{"s": "abc"}))
	assert.False(t, reqpkg.Eval(req, mapValues{"s": "xyz"}))
}

func TestParseAndCompile_NumberLiteral(t *testing.T) {
	expr, err := Parse("-n = 3")
	require.NoError(t, err)
	req, err := Compile(expr, newResolver())
	require.NoError(t, err)
	assert.True(t, reqpkg.Eval(req, mapValues{"n": 3.0}))
}

func TestParseAndCompile_BoolLiteral(t *testing.T) {
	expr, err := Parse("-on = true")
	require.NoError(t, err)
	req, err := Compile(expr, newResolver())
	require.NoError(t, err)
	assert.True(t, reqpkg.Eval(req, mapValues{"on": true}))
	assert.False(t, reqpkg.Eval(req, mapValues{"on": false}))
}

func TestParseAndCompile_And(t *testing.T) {
	expr, err := Parse("-a and -b")
	require.NoError(t, err)
	req, err := Compile(expr, newResolver())
	require.NoError(t, err)
	assert.True(t, reqpkg.Eval(req, mapValues{"a": true, "b": true}))
	assert.False(t, reqpkg.Eval(req, mapValues{"a": true}))
}

func TestParseAndCompile_Or_Parenthesized(t *testing.T) {
	expr, err := Parse("(-f1 or -f2)")
	require.NoError(t, err)
	req, err := Compile(expr, newResolver())
	require.NoError(t, err)
	assert.True(t, reqpkg.Eval(req, mapValues{"f2": true}))
	assert.False(t, reqpkg.Eval(req, mapValues{}))
}

func TestParseAndCompile_Negation(t *testing.T) {
	expr, err := Parse("no -f2")
	require.NoError(t, err)
	req, err := Compile(expr, newResolver())
	require.NoError(t, err)
	assert.True(t, reqpkg.Eval(req, mapValues{}))
	assert.False(t, reqpkg.Eval(req, mapValues{"f2": true}))
}

func TestCompile_UnknownName(t *testing.T) {
	expr, err := Parse("-nope")
	require.NoError(t, err)
	_, err = Compile(expr, newResolver())
	assert.Error(t, err)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("-a and and -b")
	assert.Error(t, err)
}
