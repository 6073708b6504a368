// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clargo/clargo/internal/schema"
)

func clusterRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.Register(&schema.Catalog{
		ShortCluster: true,
		Options: []*schema.OptionDef{
			{Kind: schema.KindFlag, Names: []string{"--all"}, ClusterLetters: []string{"a"}},
			{Kind: schema.KindFlag, Names: []string{"--verbose"}, ClusterLetters: []string{"v"}},
			{Kind: schema.KindString, Names: []string{"--name"}, ClusterLetters: []string{"n"}},
		},
	})
	require.NoError(t, err)
	return reg
}

func TestResolveCluster_AllFlags(t *testing.T) {
	reg := clusterRegistry(t)
	members, trailing, ok := resolveCluster(reg, "-av")
	require.True(t, ok)
	assert.Empty(t, trailing)
	assert.Len(t, members, 2)
}

func TestResolveCluster_ValueSwallowsRemainder(t *testing.T) {
	reg := clusterRegistry(t)
	members, trailing, ok := resolveCluster(reg, "-anada")
	require.True(t, ok)
	assert.Equal(t, "ada", trailing)
	assert.Len(t, members, 2)
}

func TestResolveCluster_UnknownLetterFails(t *testing.T) {
	reg := clusterRegistry(t)
	_, _, ok := resolveCluster(reg, "-az")
	assert.False(t, ok)
}
