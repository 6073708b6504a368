// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clargo/clargo/pkg/clargo"
)

func TestCatalog_RegistersCleanly(t *testing.T) {
	_, err := clargo.New(catalog())
	require.NoError(t, err)
}

func TestCatalog_ParsesDeploySubcommand(t *testing.T) {
	p, err := clargo.New(catalog())
	require.NoError(t, err)

	out, err := p.Parse([]string{"deploy", "--target", "prod"})
	require.NoError(t, err)

	sub, ok := out.Values.Sub("deploy")
	require.True(t, ok)
	target, _ := sub.Get("--target")
	assert.Equal(t, "prod", target)
}

func TestCatalog_Help(t *testing.T) {
	p, err := clargo.New(catalog())
	require.NoError(t, err)

	out, err := p.Parse([]string{"--help"})
	require.NoError(t, err)
	require.NotNil(t, out.Message)
}
