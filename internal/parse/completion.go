// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"context"
	"strings"

	"github.com/clargo/clargo/internal/message"
	"github.com/clargo/clargo/internal/schema"
)

// awaitingValueError is parseTokens' completion-mode signal that the last
// token in the replayed prefix was a name (or cluster) still waiting on its
// parameter when the prefix ran out — i.e. the cursor itself occupies that
// parameter's slot. It is never returned outside comp=true, and Complete is
// its only caller: every other consumer of parseTokens runs with comp=false
// and gets clargoerr.MissingParam instead.
type awaitingValueError struct {
	entry     *schema.Entry
	inCluster bool
}

func (e *awaitingValueError) Error() string {
	return "awaiting value for " + e.entry.ID
}

// Complete enumerates shell-completion candidates for the token at
// cursorIndex (with cursorPrefix typed so far), given the other,
// already-complete tokens in args. It replays the prefix through the same
// parseTokens state machine used by Parse, in completion mode: a function
// or command callback still runs (comp=true lets it suppress side effects
// itself), and a normalization or requirement failure is swallowed rather
// than surfaced, since a still-being-typed command line is routinely
// invalid until the user finishes it — only the *awaitingValueError
// signal, not any other error, is meaningful to this caller.
func (p *Parser) Complete(args []string, cursorIndex int, cursorPrefix string) message.Message {
	return p.completeCtx(context.Background(), args, cursorIndex, cursorPrefix, false)
}

// CompleteAsync is Complete's awaitable counterpart: an option's
// CompleteAsync callback, if declared, is awaited instead of being skipped.
func (p *Parser) CompleteAsync(ctx context.Context, args []string, cursorIndex int, cursorPrefix string) message.Message {
	return p.completeCtx(ctx, args, cursorIndex, cursorPrefix, true)
}

func (p *Parser) completeCtx(ctx context.Context, args []string, cursorIndex int, cursorPrefix string, async bool) message.Message {
	if cursorIndex < 0 || cursorIndex > len(args) {
		return message.NewCompletionMessage(nil)
	}
	scope, scopeArgs, scopeCursor := p.resolveCompletionScope(args, cursorIndex)
	return scope.completeLocal(ctx, scopeArgs, scopeCursor, cursorPrefix, async)
}

// resolveCompletionScope walks args up to cursorIndex looking for a
// command-kind option whose sub-catalog argument region contains the
// cursor, descending recursively so completion for "app sub1 sub2 <TAB>"
// is computed against sub2's own registered options, not app's. It returns
// the parser that owns the cursor's position, the argument slice relative
// to that parser, and the cursor index within that slice.
func (p *Parser) resolveCompletionScope(args []string, cursorIndex int) (*Parser, []string, int) {
	vals := newValues()
	p.applyEnvFallbacks(vals)
	i := 0
	for i < cursorIndex {
		tok := args[i]
		head, _, hasInline := splitInline(tok)
		id, ok := p.reg.Lookup(head)
		if !ok {
			i++
			continue
		}
		e, _ := p.reg.EntryByID(id)
		if e == nil || e.Def.Kind != schema.KindCommand || hasInline {
			i++
			continue
		}
		sub, err := registerSubCatalog(e.Def)
		if err != nil || sub == nil {
			i++
			continue
		}
		subParser := &Parser{reg: sub, env: p.env, fileReader: p.fileReader, maxConcurrentChecks: p.maxConcurrentChecks}
		return subParser.resolveCompletionScope(args[i+1:], cursorIndex-(i+1))
	}
	return p, args, cursorIndex
}

// completeLocal computes candidates for one catalog's own option set: it
// replays everything strictly before the cursor through parseTokens in
// completion mode to learn which option (if any) owns the cursor's
// parameter slot, best-effort.
func (p *Parser) completeLocal(ctx context.Context, args []string, cursorIndex int, cursorPrefix string, async bool) message.Message {
	vals := newValues()
	p.applyEnvFallbacks(vals)

	prefix := args[:cursorIndex]
	owner, inCluster := p.ownerAtCursor(vals, prefix)

	if strings.HasPrefix(cursorPrefix, "-") || owner == nil {
		return message.NewCompletionMessage(p.nameCandidates(cursorPrefix))
	}
	if inCluster {
		return message.NewCompletionMessage(p.nameCandidates(cursorPrefix))
	}

	def := owner.Def
	if async && def.CompleteAsync != nil {
		cands, err := def.CompleteAsync(ctx, vals, cursorPrefix)
		if err != nil {
			return message.NewCompletionMessage(nil)
		}
		return message.NewCompletionMessage(cands)
	}
	if def.Complete != nil {
		return message.NewCompletionMessage(def.Complete(vals, cursorPrefix))
	}
	if def.Kind == schema.KindBoolean {
		return message.NewCompletionMessage(filterPrefix([]string{"true", "false"}, cursorPrefix))
	}
	if len(def.Choices) > 0 {
		return message.NewCompletionMessage(filterPrefix(def.Choices, cursorPrefix))
	}
	return message.NewCompletionMessage(nil)
}

// ownerAtCursor replays prefix through parseTokens in completion mode and
// reports the entry whose parameter slot the cursor token would fill, via
// the *awaitingValueError signal parseTokens raises for exactly that case.
// Any other error (an earlier, unrelated token failing to normalize) is
// swallowed: the cursor's candidate set falls back to name completion.
func (p *Parser) ownerAtCursor(vals *Values, prefix []string) (*schema.Entry, bool) {
	if len(prefix) == 0 {
		return nil, false
	}
	rc := &runCtx{ctx: context.Background(), comp: true, pending: &[]asyncJob{}}
	_, _, err := p.parseTokens(vals, prefix, rc)
	if err == nil {
		return nil, false
	}
	if av, ok := err.(*awaitingValueError); ok {
		return av.entry, av.inCluster
	}
	return nil, false
}

func (p *Parser) nameCandidates(prefix string) []string {
	var out []string
	for _, e := range p.reg.Entries() {
		if e.Def.Hide {
			continue
		}
		for _, n := range e.Def.Names {
			if n != "" && strings.HasPrefix(n, prefix) {
				out = append(out, n)
			}
		}
	}
	return out
}

func filterPrefix(choices []string, prefix string) []string {
	var out []string
	for _, c := range choices {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
