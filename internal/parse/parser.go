// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"context"
	"runtime"

	"github.com/clargo/clargo/internal/clargoerr"
	"github.com/clargo/clargo/internal/host"
	"github.com/clargo/clargo/internal/logging"
	"github.com/clargo/clargo/internal/message"
	"github.com/clargo/clargo/internal/schema"
)

// Parser runs a registered catalog's state machine over an argument
// vector. It holds no per-parse state; Parse/ParseAsync each start fresh.
type Parser struct {
	reg                 *schema.Registry
	env                 host.Env
	fileReader          host.FileReader
	maxConcurrentChecks int
}

// Opt configures a Parser at construction.
type Opt func(*Parser)

// WithEnv overrides the environment reader used for EnvVar fallbacks.
func WithEnv(env host.Env) Opt {
	return func(p *Parser) { p.env = env }
}

// WithFileReader overrides the reader used to resolve version options.
func WithFileReader(r host.FileReader) Opt {
	return func(p *Parser) { p.fileReader = r }
}

// WithMaxConcurrentChecks bounds how many branches of an async requirement
// tree, or how many queued ParseAsync jobs, run concurrently; DefaultFn/
// DefaultFnAsync hooks are not bounded by it. Defaults to
// runtime.GOMAXPROCS(0).
func WithMaxConcurrentChecks(n int) Opt {
	return func(p *Parser) { p.maxConcurrentChecks = n }
}

// New registers catalog and returns a Parser for it. A non-nil error means
// the catalog itself is invalid; it never depends on argument input.
func New(catalog *schema.Catalog, opts ...Opt) (*Parser, error) {
	reg, err := schema.Register(catalog)
	if err != nil {
		return nil, err
	}
	p := &Parser{
		reg:                 reg,
		env:                 host.OSEnv{},
		fileReader:          host.OSFileReader{},
		maxConcurrentChecks: runtime.GOMAXPROCS(0),
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Outcome is the result of a successful parse: the populated Values, plus
// an optional rendered Message when a help/version option (or any option
// marked Break) short-circuited the remainder of the argument vector.
type Outcome struct {
	Values  *Values
	Message message.Message
}

// runCtx threads the state shared by every dispatch call through one
// parse: whether this is a completion replay, the context async callbacks
// should honor, and the queue of ParseAsync jobs collected during the
// (always synchronous) token loop for later concurrent resolution.
type runCtx struct {
	ctx     context.Context
	comp    bool
	async   bool
	pending *[]asyncJob
}

// Parse runs the state machine synchronously over args (the command's own
// arguments, with the program name and any NAME=VALUE env prefix already
// stripped by internal/tokenize). It statically rejects a catalog that
// declares any async callback or predicate (see Registry.HasAsync); use
// ParseAsync for those.
func (p *Parser) Parse(args []string) (*Outcome, error) {
	if p.reg.HasAsync() {
		return nil, clargoerr.AsyncRequired()
	}
	return p.parse(context.Background(), args, false)
}

// ParseAsync is Parse's awaitable counterpart: DefaultFn/DefaultFnAsync run
// concurrently, queued ParseAsync jobs are resolved concurrently once the
// token loop completes, and async predicates evaluate via require.EvalAsync.
func (p *Parser) ParseAsync(ctx context.Context, args []string) (*Outcome, error) {
	return p.parse(ctx, args, true)
}

func (p *Parser) parse(ctx context.Context, args []string, async bool) (*Outcome, error) {
	vals := newValues()
	if id, ok := logging.ParseIDFromContext(ctx); ok {
		vals.parseID = id
	} else {
		vals.parseID = host.NewParseID()
	}
	p.applyEnvFallbacks(vals)

	out, err := p.parseBody(ctx, vals, args, async)
	if err != nil {
		return nil, clargoerr.WithParseID(err, vals.parseID)
	}
	return out, nil
}

func (p *Parser) parseBody(ctx context.Context, vals *Values, args []string, async bool) (*Outcome, error) {
	var pending []asyncJob
	rc := &runCtx{ctx: ctx, async: async, pending: &pending}

	out, brk, err := p.parseTokens(vals, args, rc)
	if err != nil {
		return nil, err
	}
	if brk {
		return out, nil
	}

	if async {
		if err := commitAsyncJobs(ctx, vals, pending, p.maxConcurrentChecks); err != nil {
			return nil, err
		}
		if err := checkRequirementsAsync(ctx, p.reg, vals, p.maxConcurrentChecks); err != nil {
			return nil, err
		}
		if err := materializeDefaultsAsync(ctx, p.reg, vals); err != nil {
			return nil, err
		}
	} else {
		if err := checkRequirements(p.reg, vals); err != nil {
			return nil, err
		}
		if err := materializeDefaults(p.reg, vals); err != nil {
			return nil, err
		}
	}
	return &Outcome{Values: vals}, nil
}

// applyEnvFallbacks seeds vals.specified for any option declaring EnvVar
// when the variable is set, before any token is processed — an explicit
// token later in the same parse still overwrites it, since it's applied
// via the same vals.set used by every other dispatch path. Env fallbacks
// always use the synchronous Parse callback: there is no context to await
// ParseAsync against this early, so an EnvVar option pairs with Parse only.
func (p *Parser) applyEnvFallbacks(vals *Values) {
	for _, e := range p.reg.Entries() {
		if e.Def.EnvVar == "" {
			continue
		}
		if raw, ok := p.env.Lookup(e.Def.EnvVar); ok {
			if v, err := normalizeSingle(vals, e.Def, e.Def.EnvVar, raw); err == nil {
				vals.set(e.ID, v)
			}
		}
	}
}

// parseTokens runs the name-resolution loop over args, returning the
// parse outcome (non-nil only when a Break-marked option fired, producing
// help/version output) and whether such a break occurred. In completion
// mode (rc.comp), an option left awaiting its value at the end of args
// surfaces as an *awaitingValueError rather than clargoerr.MissingParam.
func (p *Parser) parseTokens(vals *Values, args []string, rc *runCtx) (*Outcome, bool, error) {
	i := 0
	positionalActive := false
	var positionalEntry *schema.Entry
	if _, posID, ok := p.reg.PositionalMarker(); ok {
		if e, found := p.reg.EntryByID(posID); found {
			positionalEntry = e
		}
	}

	for i < len(args) {
		tok := args[i]

		if marker, _, ok := p.reg.PositionalMarker(); ok && tok == marker && !positionalActive {
			positionalActive = true
			i++
			continue
		}

		if positionalActive {
			consumed, err := p.dispatchPositional(vals, positionalEntry, args, i, true, rc)
			if err != nil {
				return nil, false, err
			}
			i += consumed
			continue
		}

		head, inline, hasInline := splitInline(tok)
		if id, ok := p.reg.Lookup(head); ok {
			entry, _ := p.reg.EntryByID(id)
			out, brk, consumed, err := p.dispatchNamed(vals, entry, head, inline, hasInline, args, i, rc)
			if err != nil {
				return nil, false, err
			}
			if brk {
				return out, true, nil
			}
			i += consumed
			continue
		}

		if p.reg.ShortClusterEnabled() && looksLikeClusterCandidate(tok) {
			if members, trailing, ok := resolveCluster(p.reg, tok); ok {
				out, brk, err := p.dispatchCluster(vals, members, trailing, args, i, rc)
				if err != nil {
					return nil, false, err
				}
				if brk {
					return out, true, nil
				}
				i++
				continue
			}
		}

		if positionalEntry != nil && !isBoundaryToken(p.reg, tok) {
			consumed, err := p.dispatchPositional(vals, positionalEntry, args, i, false, rc)
			if err != nil {
				return nil, false, err
			}
			i += consumed
			continue
		}

		return nil, false, clargoerr.UnknownName(tok, p.reg.SimilarNames(head, 0.6))
	}

	return nil, false, nil
}

// dispatchNamed handles one occurrence of a registered option, identified
// by the name the user actually typed (nameUsed), which may be a negation
// form. It returns the (Break-only) outcome, whether a break occurred, and
// how many tokens (including the option's own name token) were consumed.
func (p *Parser) dispatchNamed(vals *Values, e *schema.Entry, nameUsed, inline string, hasInline bool, args []string, idx int, rc *runCtx) (*Outcome, bool, int, error) {
	def := e.Def
	if def.Deprecated {
		vals.warnDeprecated(nameUsed)
	}

	consumed := 1 // the name token itself
	switch def.Kind {
	case schema.KindFlag:
		if hasInline {
			return nil, false, 0, clargoerr.NoInlineAllowed(nameUsed)
		}
		vals.set(e.ID, !p.reg.IsNegationName(nameUsed))

	case schema.KindBoolean, schema.KindString, schema.KindNumber:
		if hasInline && inline == "" && def.Fallback != nil {
			vals.set(e.ID, def.Fallback)
			break
		}
		if rc.comp && !hasInline && idx+1 >= len(args) {
			return nil, false, 0, &awaitingValueError{entry: e}
		}
		raw, extra, err := collectSingleValue(p.reg, nameUsed, args, idx+1, inline, hasInline)
		if err != nil {
			return nil, false, 0, err
		}
		v, job, err := normalizeSingleAsync(vals, def, nameUsed, raw)
		if err != nil {
			return nil, false, 0, err
		}
		vals.set(e.ID, v)
		if job != nil && rc.pending != nil {
			job.id = e.ID
			*rc.pending = append(*rc.pending, *job)
		}
		consumed += extra

	case schema.KindStringArray, schema.KindNumberArray:
		if hasInline && inline == "" && def.Fallback != nil {
			vals.set(e.ID, def.Fallback)
			break
		}
		if rc.comp && !hasInline && idx+1 >= len(args) {
			return nil, false, 0, &awaitingValueError{entry: e}
		}
		items, extra, err := collectArray(p.reg, vals, def, nameUsed, args, idx+1, inline, hasInline)
		if err != nil {
			return nil, false, 0, err
		}
		if def.Append {
			vals.appendArray(e.ID, items, def.Unique)
		} else {
			vals.replaceArray(e.ID, items, def.Unique)
		}
		consumed += extra

	case schema.KindFunction:
		params, extra, err := collectFunctionParams(p.reg, def, nameUsed, args, idx+1)
		if err != nil {
			return nil, false, 0, err
		}
		res, err := runFunction(vals, def, nameUsed, params, idx, rc.comp)
		if err != nil {
			return nil, false, 0, err
		}
		vals.set(e.ID, res.Value)
		consumed += extra + res.SkipCount

	case schema.KindCommand:
		sub, err := registerSubCatalog(def)
		if err != nil {
			return nil, false, 0, err
		}
		vals.set(e.ID, true)
		if sub != nil {
			subParser := &Parser{reg: sub, env: p.env, fileReader: p.fileReader, maxConcurrentChecks: p.maxConcurrentChecks}
			subVals := newValues()
			subVals.parseID = vals.parseID
			subParser.applyEnvFallbacks(subVals)
			rest := args[idx+1:]
			var subPending []asyncJob
			subRC := &runCtx{ctx: rc.ctx, comp: rc.comp, async: rc.async, pending: &subPending}
			out, brk, err := subParser.parseTokens(subVals, rest, subRC)
			if err != nil {
				return nil, false, 0, err
			}
			if brk {
				return out, true, 0, nil
			}
			if rc.async {
				if err := commitAsyncJobs(rc.ctx, subVals, subPending, subParser.maxConcurrentChecks); err != nil {
					return nil, false, 0, err
				}
				if err := checkRequirementsAsync(rc.ctx, sub, subVals, subParser.maxConcurrentChecks); err != nil {
					return nil, false, 0, err
				}
				if err := materializeDefaultsAsync(rc.ctx, sub, subVals); err != nil {
					return nil, false, 0, err
				}
			} else {
				if err := checkRequirements(sub, subVals); err != nil {
					return nil, false, 0, err
				}
				if err := materializeDefaults(sub, subVals); err != nil {
					return nil, false, 0, err
				}
			}
			vals.sub[e.ID] = subVals
			if def.OnCommand != nil {
				if err := def.OnCommand(subVals); err != nil {
					return nil, false, 0, err
				}
			}
		}
		return nil, false, len(args) - idx, nil

	case schema.KindHelp:
		vals.set(e.ID, true)
		return &Outcome{Values: vals, Message: buildHelpMessage(p.reg, def, inline, hasInline)}, def.Break, consumed, nil

	case schema.KindVersion:
		vals.set(e.ID, true)
		version, err := resolveVersion(p.fileReader, def)
		if err != nil {
			return nil, false, 0, err
		}
		t := message.NewTerminalString(0)
		t.Word(version)
		return &Outcome{Values: vals, Message: message.NewAnsiMessage(t)}, def.Break, consumed, nil
	}

	if def.Break {
		return &Outcome{Values: vals}, true, consumed, nil
	}
	return nil, false, consumed, nil
}

// dispatchCluster applies every resolved cluster member in turn: all but
// possibly the last are flags (no value); the last, if trailing is
// non-empty, receives it as an inline value.
func (p *Parser) dispatchCluster(vals *Values, members []clusterMember, trailing string, args []string, idx int, rc *runCtx) (*Outcome, bool, error) {
	for i, m := range members {
		e, _ := p.reg.EntryByID(m.id)
		last := i == len(members)-1
		name := "-" + string(m.letter)
		if last && trailing != "" {
			out, brk, _, err := p.dispatchNamed(vals, e, name, trailing, true, args, idx, rc)
			if err != nil {
				return nil, false, err
			}
			if brk {
				return out, true, nil
			}
			continue
		}
		if m.def.Kind != schema.KindFlag && m.def.Kind != schema.KindBoolean {
			if last {
				out, brk, _, err := p.dispatchNamed(vals, e, name, "", false, args, idx, rc)
				if err != nil {
					if av, ok := err.(*awaitingValueError); ok {
						av.inCluster = true
						return nil, false, av
					}
					return nil, false, err
				}
				if brk {
					return out, true, nil
				}
				continue
			}
			return nil, false, clargoerr.ClusterPositionError(m.letter, string([]rune(args[idx])[1:]))
		}
		out, brk, _, err := p.dispatchNamed(vals, e, name, "", false, args, idx, rc)
		if err != nil {
			return nil, false, err
		}
		if brk {
			return out, true, nil
		}
	}
	return nil, false, nil
}

// dispatchPositional feeds one or more leading tokens of args[idx:] to the
// positional-marker option, treating it as an array if it is one and a
// single value otherwise.
//
// markerSeen distinguishes the two ways a token reaches here: once the
// explicit positional marker has been consumed, every remaining token is
// positional regardless of whether it resembles a registered option name
// (that is the marker's purpose); absent a marker, a catch-all positional
// still stops at the next token that looks like a known option, so
// boundary detection stays in effect.
func (p *Parser) dispatchPositional(vals *Values, e *schema.Entry, args []string, idx int, markerSeen bool, rc *runCtx) (int, error) {
	if e == nil {
		return 0, clargoerr.UnknownName(args[idx], nil)
	}
	def := e.Def
	name := def.PreferredName
	if name == "" {
		name = e.ID
	}

	if def.Kind == schema.KindStringArray || def.Kind == schema.KindNumberArray {
		var raws []string
		if markerSeen {
			raws = args[idx:]
			if def.Limit > 0 && len(raws) > def.Limit {
				return 0, clargoerr.TooManyValues(name, len(raws), def.Limit)
			}
		} else {
			items, consumed, err := collectArray(p.reg, vals, def, name, args, idx, "", false)
			if err != nil {
				return 0, err
			}
			if def.Append {
				vals.appendArray(e.ID, items, def.Unique)
			} else {
				vals.replaceArray(e.ID, items, def.Unique)
			}
			if consumed == 0 {
				consumed = 1
			}
			return consumed, nil
		}
		items := make([]any, 0, len(raws))
		for _, raw := range raws {
			v, err := normalizeArrayElement(vals, def, name, raw)
			if err != nil {
				return 0, err
			}
			items = append(items, v)
		}
		if def.Append {
			vals.appendArray(e.ID, items, def.Unique)
		} else {
			vals.replaceArray(e.ID, items, def.Unique)
		}
		return len(raws), nil
	}

	v, job, err := normalizeSingleAsync(vals, def, name, args[idx])
	if err != nil {
		return 0, err
	}
	vals.set(e.ID, v)
	if job != nil && rc.pending != nil {
		job.id = e.ID
		*rc.pending = append(*rc.pending, *job)
	}
	return 1, nil
}
