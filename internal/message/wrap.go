// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package message

import (
	"io"
	"strings"
)

// group is a run of glued segments rendered as a single unbreakable unit.
type group struct {
	text       string // raw text, including any embedded SGR sequences
	width      int    // visual width, excluding SGR sequences
	breakAfter bool   // a forced Break followed this group
}

// groups flattens t's segments into unbreakable visual words, merging
// glued segments (Open/Close/Seq) into a single unit each.
func (t *TerminalString) groups() []group {
	var out []group
	var cur strings.Builder
	curWidth := 0
	haveCur := false
	openForNext := false

	flush := func() {
		if haveCur {
			out = append(out, group{text: cur.String(), width: curWidth})
			cur.Reset()
			curWidth = 0
			haveCur = false
		}
	}

	for _, seg := range t.segments {
		switch seg.kind {
		case segBreak:
			flush()
			if len(out) > 0 {
				out[len(out)-1].breakAfter = true
			} else {
				out = append(out, group{breakAfter: true})
			}
			openForNext = false
		case segSeq:
			cur.WriteString(seg.text)
			if !haveCur {
				openForNext = true
			}
			haveCur = true
		case segWord:
			if haveCur && (openForNext || seg.glueLeft) {
				cur.WriteString(seg.text)
				curWidth += visualWidth(seg.text)
			} else {
				flush()
				cur.WriteString(seg.text)
				curWidth = visualWidth(seg.text)
				haveCur = true
			}
			openForNext = seg.glueRight
		}
	}
	flush()
	return out
}

// Wrap renders t to out starting at column currentCol.
//
// width == 0 disables word wrapping: line structure (forced breaks) is
// preserved and, when emitStyles is false, SGR sequences are stripped.
// width > 0 greedily breaks before a word that would overflow the line;
// if the single widest word in the string still doesn't fit, indentation
// is abandoned for that overflow line so the word isn't split; if the
// configured indent exceeds width/2 it is dropped entirely rather than
// consuming most of the line.
func (t *TerminalString) Wrap(out io.Writer, currentCol, width int, emitStyles bool) (int, error) {
	groups := t.groups()

	indent := t.indent
	if width > 0 && indent > width/2 {
		indent = 0
	}

	col := currentCol
	first := true
	lineGroups := [][]group{}
	var line []group

	flushLine := func() {
		lineGroups = append(lineGroups, line)
		line = nil
	}

	for _, g := range groups {
		if g.text == "" && g.breakAfter && len(line) == 0 {
			// a bare forced break with nothing buffered yet
			flushLine()
			continue
		}
		needsSpace := len(line) > 0
		projected := col
		if needsSpace {
			projected++
		}
		projected += g.width

		if width > 0 && len(line) > 0 && projected > width {
			flushLine()
			col = indent
			needsSpace = false
		}
		if len(line) == 0 && !first {
			col = indent
		}
		if needsSpace {
			col++
		}
		col += g.width
		line = append(line, g)
		first = false

		if g.breakAfter {
			flushLine()
			col = indent
		}
	}
	if len(line) > 0 {
		flushLine()
	}

	for i, ln := range lineGroups {
		// an overflow line (content wider than the room after the indent)
		// is written without indentation
		lineIndent := indent
		if width > 0 && indent > 0 {
			content := len(ln) - 1
			for _, g := range ln {
				content += g.width
			}
			if indent+content > width {
				lineIndent = 0
			}
		}
		if i > 0 {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return col, err
			}
			if lineIndent > 0 {
				if _, err := io.WriteString(out, strings.Repeat(" ", lineIndent)); err != nil {
					return col, err
				}
			}
		}
		lineWidth := lineIndent
		if i == 0 {
			lineWidth = currentCol
		}
		for gi, g := range ln {
			text := g.text
			if !emitStyles {
				text = stripStyles(text)
			}
			if gi > 0 {
				if _, err := io.WriteString(out, " "); err != nil {
					return col, err
				}
				lineWidth++
			}
			if _, err := io.WriteString(out, text); err != nil {
				return col, err
			}
			lineWidth += g.width
		}
		if t.rightAlign && width > 0 && lineWidth < width {
			pad := width - lineWidth
			if emitStyles {
				if _, err := io.WriteString(out, cuf(pad)); err != nil {
					return col, err
				}
			} else {
				if _, err := io.WriteString(out, strings.Repeat(" ", pad)); err != nil {
					return col, err
				}
			}
			lineWidth = width
		}
		col = lineWidth
	}

	return col, nil
}

// WrapString is a convenience wrapper returning the rendered text.
func (t *TerminalString) WrapString(currentCol, width int, emitStyles bool) string {
	var b strings.Builder
	_, _ = t.Wrap(&b, currentCol, width, emitStyles)
	return b.String()
}

// cuf returns the "Cursor Forward" SGR-adjacent control sequence moving
// the cursor n columns right, used for right-alignment padding instead of
// literal spaces when styles are being emitted.
func cuf(n int) string {
	if n <= 0 {
		return ""
	}
	return "\x1b[" + itoa(n) + "C"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
