// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGestaltSimilarity_Bounds(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"hello", "hello"},
		{"hello", "world"},
		{"", "x"},
		{"abc", "abd"},
	}
	for _, tc := range tests {
		s := gestaltSimilarity(tc.a, tc.b)
		if math.IsNaN(s) {
			continue
		}
		assert.GreaterOrEqual(t, s, 0.0, "%q vs %q", tc.a, tc.b)
		assert.LessOrEqual(t, s, 1.0, "%q vs %q", tc.a, tc.b)
	}
}

func TestGestaltSimilarity_SelfIsOne(t *testing.T) {
	assert.Equal(t, 1.0, gestaltSimilarity("verbose", "verbose"))
}

func TestGestaltSimilarity_BothEmptyIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(gestaltSimilarity("", "")))
}

func TestGestaltSimilarity_Dissimilar(t *testing.T) {
	s := gestaltSimilarity("abc", "xyz")
	assert.Equal(t, 0.0, s)
}

func TestSimilarNames_ThresholdAndCollapsing(t *testing.T) {
	names := []string{"--verbose", "--verbos", "--quiet", "--version"}
	out := similarNames("--verbose", names, 0.6)

	assert.Contains(t, out, "--verbose")
	assert.NotContains(t, out, "--verbos")
	assert.NotContains(t, out, "--quiet")
	// --verbos and --version both pass the threshold, but each is within
	// it of the accepted top suggestion --verbose, so both collapse;
	// --quiet is below the threshold.
	assert.LessOrEqual(t, len(out), len(names))
}
