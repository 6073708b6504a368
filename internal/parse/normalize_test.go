// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clargo/clargo/internal/schema"
)

func TestNormalizeString_TrimAndCase(t *testing.T) {
	def := &schema.OptionDef{Trim: true, Case: schema.CaseUpper}
	v, err := normalizeString("--name", "  ada  ", def)
	require.NoError(t, err)
	assert.Equal(t, "ADA", v)
}

func TestNormalizeString_RegexRejects(t *testing.T) {
	def := &schema.OptionDef{Regex: regexp.MustCompile(`^[a-z]+$`)}
	_, err := normalizeString("--name", "Ada1", def)
	require.Error(t, err)
}

func TestNormalizeString_Choices(t *testing.T) {
	def := &schema.OptionDef{Choices: []string{"red", "blue"}}
	v, err := normalizeString("--color", "red", def)
	require.NoError(t, err)
	assert.Equal(t, "red", v)

	_, err = normalizeString("--color", "green", def)
	require.Error(t, err)
}

func TestNormalizeString_ChoiceMapSubstitutes(t *testing.T) {
	def := &schema.OptionDef{ChoiceMap: map[string]any{"y": true, "n": false}}
	v, err := normalizeString("--confirm", "y", def)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestNormalizeNumber_RoundAndRange(t *testing.T) {
	def := &schema.OptionDef{Round: schema.RoundFloor, Range: &schema.NumberRange{HasMax: true, Max: 10}}
	v, err := normalizeNumber("--n", "9.8", def)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)

	_, err = normalizeNumber("--n", "11", def)
	require.Error(t, err)
}

func TestNormalizeNumber_NotANumber(t *testing.T) {
	_, err := normalizeNumber("--n", "abc", &schema.OptionDef{})
	require.Error(t, err)
}

func TestNormalizeBool_DefaultNames(t *testing.T) {
	def := &schema.OptionDef{}
	v, err := normalizeBool("--strict", "true", def)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = normalizeBool("--strict", "false", def)
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestNormalizeBool_CustomNamesCaseInsensitive(t *testing.T) {
	def := &schema.OptionDef{TruthNames: []string{"on"}, FalsityNames: []string{"off"}}
	v, err := normalizeBool("--power", "ON", def)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestNormalizeBool_CaseSensitiveRejectsMismatch(t *testing.T) {
	def := &schema.OptionDef{TruthNames: []string{"On"}, FalsityNames: []string{"Off"}, CaseSensitive: true}
	_, err := normalizeBool("--power", "on", def)
	require.Error(t, err)
}
