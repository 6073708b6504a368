// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package message

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// visualWidth returns the printable column width of s: SGR sequences are
// stripped before measuring, and multi-rune grapheme clusters (e.g. an
// emoji built from several codepoints) are measured once as a unit rather
// than once per contained rune.
func visualWidth(s string) int {
	plain := ansi.Strip(s)
	if plain == "" {
		return 0
	}

	width := 0
	gr := uniseg.NewGraphemes(plain)
	for gr.Next() {
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)
		if w == 0 && cluster != "" {
			// Zero-width joiners / combining marks still occupy the cell
			// of the base rune they're attached to; uniseg already folded
			// them into this cluster, so nothing further is added here.
			continue
		}
		width += w
	}
	return width
}

// stripStyles removes SGR control sequences from s, used on the width=0
// "no-wrap, strip styles" rendering path.
func stripStyles(s string) string {
	return ansi.Strip(s)
}
