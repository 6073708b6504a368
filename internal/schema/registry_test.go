// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reqpkg "github.com/clargo/clargo/internal/require"
)

func strPtr(s string) *string { return &s }

func TestRegister_SimpleCatalog(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindFlag, Names: []string{"-f", "--flag"}},
		{Kind: KindString, Names: []string{"-s"}},
	}}
	reg, err := Register(cat)
	require.NoError(t, err)

	id, ok := reg.Lookup("-f")
	assert.True(t, ok)
	id2, ok2 := reg.Lookup("--flag")
	assert.True(t, ok2)
	assert.Equal(t, id, id2)

	_, ok = reg.Lookup("-s")
	assert.True(t, ok)
}

func TestRegister_EmptyNameRejected(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{{Kind: KindFlag}}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_NameWithEqualsRejected(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{{Kind: KindFlag, Names: []string{"-f=x"}}}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_DuplicateNameRejected(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindFlag, Names: []string{"-f"}},
		{Kind: KindFlag, Names: []string{"-f"}},
	}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_DuplicateClusterLetterRejected(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindFlag, Names: []string{"-a"}, ClusterLetters: []string{"x"}},
		{Kind: KindFlag, Names: []string{"-b"}, ClusterLetters: []string{"x"}},
	}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_EmptyChoicesRejected(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindString, Names: []string{"-s"}, Choices: []string{}},
	}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_EmptyVersionRejected(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindVersion, Names: []string{"--version"}, Version: &VersionDef{}},
	}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_InvalidSemverRejected(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindVersion, Names: []string{"--version"}, Version: &VersionDef{Value: "not-a-version"}},
	}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_ValidSemverAccepted(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindVersion, Names: []string{"--version"}, Version: &VersionDef{Value: "1.2.3"}},
	}}
	_, err := Register(cat)
	assert.NoError(t, err)
}

func TestRegister_PositionalMarker(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindStringArray, Names: []string{"-p"}, Positional: strPtr("--")},
	}}
	reg, err := Register(cat)
	require.NoError(t, err)
	marker, id, ok := reg.PositionalMarker()
	assert.True(t, ok)
	assert.Equal(t, "--", marker)
	assert.NotEmpty(t, id)
}

func TestRegister_EmptyPositionalMarkerRejected(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindStringArray, Names: []string{"-p"}, Positional: strPtr("")},
	}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_RequiresUnknownOptionRejected(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindFlag, Names: []string{"-f"}, Requires: reqpkg.NameOnly("nope")},
	}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_SelfReferenceRejected(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindFlag, PreferredName: "-f", Names: []string{"-f"}, Requires: reqpkg.NameOnly("-f")},
	}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_TransitiveSelfReferenceRejected(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindFlag, PreferredName: "-a", Names: []string{"-a"}, Requires: reqpkg.NameOnly("-b")},
		{Kind: KindFlag, PreferredName: "-b", Names: []string{"-b"}, Requires: reqpkg.NameOnly("-a")},
	}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_RequiredValueTypeMismatchRejected(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindString, PreferredName: "-s", Names: []string{"-s"}},
		{Kind: KindFlag, PreferredName: "-f", Names: []string{"-f"}, Requires: reqpkg.ValueMap("-s", reqpkg.Equals(3.0))},
	}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_RequiresExprCompiled(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindString, PreferredName: "-s", Names: []string{"-s"}},
		{Kind: KindFlag, PreferredName: "-f", Names: []string{"-f"}, RequiresExpr: "-s = 'abc'"},
	}}
	reg, err := Register(cat)
	require.NoError(t, err)
	req, ok := reg.Requires("-f")
	require.True(t, ok)
	assert.Equal(t, "-s = 'abc'", reqpkg.Render(req, reg))
}

func TestRegister_NestedCommandValidatedRecursively(t *testing.T) {
	sub := &Catalog{Options: []*OptionDef{{Kind: KindFlag}}} // invalid: no name
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindCommand, Names: []string{"sub"}, SubCatalog: sub},
	}}
	_, err := Register(cat)
	assert.Error(t, err)
}

func TestRegister_NestedCommandCycleBreaksOnIdentity(t *testing.T) {
	var cat *Catalog
	cat = &Catalog{Options: []*OptionDef{
		{Kind: KindCommand, Names: []string{"recurse"}, SubCatalogThunk: func() *Catalog { return cat }},
	}}
	_, err := Register(cat)
	assert.NoError(t, err)
}

func TestRegistry_SimilarNames(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindFlag, Names: []string{"--verbose"}},
		{Kind: KindFlag, Names: []string{"--version"}},
		{Kind: KindFlag, Names: []string{"--quiet"}},
	}}
	reg, err := Register(cat)
	require.NoError(t, err)

	suggestions := reg.SimilarNames("--verbos", 0.6)
	assert.Contains(t, suggestions, "--verbose")
	assert.NotContains(t, suggestions, "--quiet")
}

func TestRegistry_PreferredNameFallsBackToFirstName(t *testing.T) {
	cat := &Catalog{Options: []*OptionDef{
		{Kind: KindFlag, Names: []string{"-f", "--flag"}},
	}}
	reg, err := Register(cat)
	require.NoError(t, err)
	id, _ := reg.Lookup("-f")
	assert.Equal(t, "-f", reg.PreferredName(id))
}
