// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import "strings"

// splitInline splits a token at its first '=' into a head and an inline
// value. "name=" yields an empty (but present) inline value, distinct from
// no '=' at all.
func splitInline(tok string) (head string, value string, hasInline bool) {
	if i := strings.IndexByte(tok, '='); i >= 0 {
		return tok[:i], tok[i+1:], true
	}
	return tok, "", false
}

// looksLikeClusterCandidate reports whether tok could plausibly be a
// short-option cluster: a single leading dash followed by at least one
// more character, and not itself a double-dash form.
func looksLikeClusterCandidate(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	if tok[0] != '-' || tok[1] == '-' {
		return false
	}
	return true
}
