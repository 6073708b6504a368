// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"github.com/clargo/clargo/internal/schema"
)

// clusterMember is one letter of a resolved "-abc" cluster.
type clusterMember struct {
	letter rune
	id     string
	def    *schema.OptionDef
}

// resolveCluster interprets tok (a single-dash token, e.g. "-abc") as a
// run of cluster-letter aliases. Letters resolving to flag/boolean-kind
// options are collected one after another; the first letter of any other
// cluster-registered kind ends the run, and the remainder of tok after it
// is treated as that option's inline value (e.g. "-xvalue" where x takes
// a string).
//
// It returns the resolved members and the trailing inline text (if a
// value-taking letter consumed the remainder of tok), or ok=false if a
// letter is not a registered cluster letter.
func resolveCluster(reg *schema.Registry, tok string) (members []clusterMember, trailing string, ok bool) {
	letters := []rune(tok[1:])
	for i, ch := range letters {
		id, found := reg.LookupCluster(ch)
		if !found {
			return nil, "", false
		}
		entry, _ := reg.EntryByID(id)
		def := entry.Def

		last := i == len(letters)-1
		if !last && def.Kind != schema.KindFlag && def.Kind != schema.KindBoolean {
			// a value-taking option mid-cluster swallows the remainder as
			// its inline value instead of being treated as more letters.
			members = append(members, clusterMember{letter: ch, id: id, def: def})
			return members, string(letters[i+1:]), true
		}
		members = append(members, clusterMember{letter: ch, id: id, def: def})
	}
	return members, "", true
}
