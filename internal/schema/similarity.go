// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package schema

import (
	"math"
	"sort"
	"strings"
)

// gestaltSimilarity computes the Ratcliff/Obershelp similarity ratio
// between a and b: twice the total length of recursively-matched common
// substrings, divided by the combined length of both strings. Returns 1
// for two equal non-empty strings and NaN for two empty strings (matching
// the documented "0 ≤ similarity ≤ 1, similarity(s,s)=1, NaN for ('','')"
// law).
func gestaltSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return math.NaN()
	}
	total := len(a) + len(b)
	if total == 0 {
		return math.NaN()
	}
	matched := matchedLength(a, b)
	return 2 * float64(matched) / float64(total)
}

// matchedLength finds the longest common substring of a and b, then
// recurses on the unmatched left and right remainders, summing the total
// matched length (the Ratcliff/Obershelp recursive-matching procedure).
func matchedLength(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	start1, start2, length := longestCommonSubstring(a, b)
	if length == 0 {
		return 0
	}
	left := matchedLength(a[:start1], b[:start2])
	right := matchedLength(a[start1+length:], b[start2+length:])
	return left + length + right
}

// longestCommonSubstring returns the start indices in a and b and the
// length of their longest common substring, via the classic O(len(a) *
// len(b)) dynamic-programming table.
func longestCommonSubstring(a, b string) (startA, startB, length int) {
	m, n := len(a), len(b)
	prev := make([]int, n+1)
	cur := make([]int, n+1)
	best, bestEndA := 0, 0
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > best {
					best = cur[j]
					bestEndA = i
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
		for j := range cur {
			cur[j] = 0
		}
	}
	if best == 0 {
		return 0, 0, 0
	}
	startA = bestEndA - best
	// Recover startB by re-scanning: locate the matched substring text in b.
	substr := a[startA : startA+best]
	startB = strings.Index(b, substr)
	return startA, startB, best
}

// similarNames ranks every candidate by similarity to target, returns the
// names at or above threshold in descending-similarity order, and collapses
// transitive closeness: a candidate already within threshold of an
// already-accepted suggestion is skipped so near-duplicate names (e.g.
// "--verbose" and "--verbos") don't both appear.
func similarNames(target string, candidates []string, threshold float64) []string {
	type scored struct {
		name  string
		score float64
	}
	lowerTarget := strings.ToLower(target)
	var ranked []scored
	for _, c := range candidates {
		s := gestaltSimilarity(lowerTarget, strings.ToLower(c))
		if !math.IsNaN(s) && s >= threshold {
			ranked = append(ranked, scored{c, s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	var accepted []string
	for _, r := range ranked {
		collapsed := false
		for _, acc := range accepted {
			if gestaltSimilarity(strings.ToLower(r.name), strings.ToLower(acc)) >= threshold {
				collapsed = true
				break
			}
		}
		if !collapsed {
			accepted = append(accepted, r.name)
		}
	}
	return accepted
}
