// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package catalogdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema_ProducesJSON(t *testing.T) {
	raw, err := GenerateSchema()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\"properties\"")
}

func TestValidate_AcceptsWellFormedDocument(t *testing.T) {
	doc := []byte(`{"options":[{"kind":"flag","names":["--verbose"]}]}`)
	assert.NoError(t, Validate(doc))
}

func TestValidate_RejectsMissingRequiredOptions(t *testing.T) {
	doc := []byte(`{"intro":"no options field"}`)
	assert.Error(t, Validate(doc))
}
