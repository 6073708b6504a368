// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package require

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapValues struct {
	values map[string]any
	unique map[string]bool
}

func (m mapValues) Value(id string) (any, bool) {
	v, ok := m.values[id]
	return v, ok
}

func (m mapValues) Unique(id string) bool {
	return m.unique[id]
}

type nameMap map[string]string

func (n nameMap) PreferredName(id string) string {
	if name, ok := n[id]; ok {
		return name
	}
	return id
}

func TestEval_NameOnly(t *testing.T) {
	vals := mapValues{values: map[string]any{"f": true}}
	assert.True(t, Eval(NameOnly("f"), vals))
	assert.False(t, Eval(NameOnly("s"), vals))
}

func TestEval_ValueMap(t *testing.T) {
	vals := mapValues{values: map[string]any{"s": "abc"}}
	assert.True(t, Eval(ValueMap("s", Equals("abc")), vals))
	assert.False(t, Eval(ValueMap("s", Equals("xyz")), vals))
	assert.True(t, Eval(ValueMap("s", Present()), vals))
	assert.False(t, Eval(ValueMap("missing", Present()), vals))
	assert.True(t, Eval(ValueMap("missing", Absent()), vals))
}

func TestEval_ValueMap_ArrayOrdered(t *testing.T) {
	vals := mapValues{values: map[string]any{"tags": []string{"a", "b"}}}
	assert.True(t, Eval(ValueMap("tags", Equals([]string{"a", "b"})), vals))
	assert.False(t, Eval(ValueMap("tags", Equals([]string{"b", "a"})), vals))
}

func TestEval_ValueMap_ArrayUniqueMultiset(t *testing.T) {
	vals := mapValues{
		values: map[string]any{"tags": []string{"a", "b"}},
		unique: map[string]bool{"tags": true},
	}
	assert.True(t, Eval(ValueMap("tags", Equals([]string{"b", "a"})), vals))
}

func TestEval_All_ShortCircuits(t *testing.T) {
	vals := mapValues{values: map[string]any{"a": true}}
	assert.False(t, Eval(All(NameOnly("a"), NameOnly("b")), vals))
	assert.True(t, Eval(All(NameOnly("a")), vals))
	assert.True(t, Eval(All(), vals))
}

func TestEval_One(t *testing.T) {
	vals := mapValues{values: map[string]any{"f2": true}}
	assert.True(t, Eval(One(NameOnly("f1"), NameOnly("f2")), vals))
	assert.False(t, Eval(One(), vals))
}

func TestEval_Not(t *testing.T) {
	vals := mapValues{values: map[string]any{"f2": true}}
	assert.False(t, Eval(Not(NameOnly("f2")), vals))
	assert.True(t, Eval(Not(NameOnly("f1")), vals))
}

func TestEval_Predicate(t *testing.T) {
	req := Predicate(PredicateFunc{
		Eval: func(v Values) bool {
			val, ok := v.Value("n")
			return ok && val.(int) > 5
		},
	})
	assert.True(t, Eval(req, mapValues{values: map[string]any{"n": 10}}))
	assert.False(t, Eval(req, mapValues{values: map[string]any{"n": 1}}))
}

func TestEval_NilReqIsVacuouslyTrue(t *testing.T) {
	assert.True(t, Eval(nil, mapValues{}))
}

func TestReferencedIDs(t *testing.T) {
	req := All(NameOnly("a"), One(NameOnly("b"), NameOnly("a")), Not(NameOnly("c")))
	assert.Equal(t, []string{"a", "b", "c"}, req.ReferencedIDs())
}

func TestRender_NameOnly(t *testing.T) {
	assert.Equal(t, "-s", Render(NameOnly("s"), nameMap{"s": "-s"}))
}

func TestRender_ValueMapEquals(t *testing.T) {
	req := ValueMap("s", Equals("abc"))
	assert.Equal(t, "-s = 'abc'", Render(req, nameMap{"s": "-s"}))
}

func TestRender_One(t *testing.T) {
	req := One(NameOnly("f1"), NameOnly("f2"))
	assert.Equal(t, "(-f1 or -f2)", Render(req, nameMap{"f1": "-f1", "f2": "-f2"}))
}

func TestRender_Not(t *testing.T) {
	req := Not(NameOnly("f2"))
	assert.Equal(t, "no -f2", Render(req, nameMap{"f2": "-f2"}))
}

func TestRender_All(t *testing.T) {
	req := All(NameOnly("a"), NameOnly("b"))
	assert.Equal(t, "-a and -b", Render(req, nameMap{"a": "-a", "b": "-b"}))
}

func TestRender_Predicate_CustomString(t *testing.T) {
	req := Predicate(PredicateFunc{Eval: func(Values) bool { return true }, Render: "n > 5"})
	assert.Equal(t, "n > 5", Render(req, nameMap{}))
}
