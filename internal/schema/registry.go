// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package schema

import (
	"regexp"
	"sort"

	"github.com/clargo/clargo/internal/clargoerr"
	"github.com/clargo/clargo/internal/reqexpr"
	"github.com/clargo/clargo/internal/require"
)

var nameRegex = regexp.MustCompile(`^[^=\s]+$`)

// Entry is one registered option: its definition plus the id assigned to
// it during registration.
type Entry struct {
	ID  string
	Def *OptionDef
}

// Registry is the indexed, validated form of a Catalog.
type Registry struct {
	Catalog *Catalog
	entries []*Entry

	byName        map[string]string // name -> id (includes negation names)
	negationNames map[string]bool   // name -> true if it's a negation form
	byCluster     map[rune]string   // cluster letter -> id
	positionalID  string            // "" if no positional owner
	positionalMarker string

	requires   map[string]*require.Req
	requiredIf map[string]*require.Req

	hasAsync bool
}

// Register validates catalog and builds its Registry. It is the sole
// constructor: a Registry is never assembled piecemeal.
func Register(catalog *Catalog) (*Registry, error) {
	return registerWithVisited(catalog, map[*Catalog]bool{})
}

// registerWithVisited recurses into command sub-catalogs, breaking cycles
// on catalog identity (a nested command's options thunk may return a
// catalog containing itself).
func registerWithVisited(catalog *Catalog, visited map[*Catalog]bool) (*Registry, error) {
	if catalog == nil {
		return nil, clargoerr.SchemaError("catalog must not be nil")
	}
	if visited[catalog] {
		return &Registry{Catalog: catalog}, nil
	}
	visited[catalog] = true

	r := &Registry{
		Catalog:       catalog,
		byName:        map[string]string{},
		negationNames: map[string]bool{},
		byCluster:     map[rune]string{},
		requires:      map[string]*require.Req{},
		requiredIf:    map[string]*require.Req{},
	}

	for i, def := range catalog.Options {
		id := optionID(def, i)
		if err := r.registerNames(id, def, i); err != nil {
			return nil, err
		}
		if err := r.registerCluster(id, def); err != nil {
			return nil, err
		}
		if err := validateEnumeration(id, def); err != nil {
			return nil, err
		}
		if err := validateVersion(def); err != nil {
			return nil, err
		}
		if err := r.registerPositional(id, def); err != nil {
			return nil, err
		}
		r.entries = append(r.entries, &Entry{ID: id, Def: def})

		if def.Kind == KindCommand {
			sub := def.SubCatalog
			if sub == nil && def.SubCatalogThunk != nil {
				sub = def.SubCatalogThunk()
			}
			if sub != nil {
				if _, err := registerWithVisited(sub, visited); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := r.compileRequirements(); err != nil {
		return nil, err
	}
	if err := r.checkNoSelfReference(); err != nil {
		return nil, err
	}
	r.hasAsync = r.computeHasAsync()

	return r, nil
}

// computeHasAsync scans every entry for an awaitable callback or a
// requirement tree whose evaluation needs one, precomputed once at
// register() time rather than discovered mid-parse.
func (r *Registry) computeHasAsync() bool {
	for _, e := range r.entries {
		d := e.Def
		if d.ParseAsync != nil || d.DefaultFnAsync != nil || d.CompleteAsync != nil {
			return true
		}
		if req, ok := r.requires[e.ID]; ok && req.IsAsync() {
			return true
		}
		if req, ok := r.requiredIf[e.ID]; ok && req.IsAsync() {
			return true
		}
	}
	return false
}

// HasAsync reports whether any option in this catalog declares an
// awaitable callback or a predicate requiring async evaluation. Parse,
// the synchronous entry point, rejects such a catalog outright instead of
// discovering the problem mid-parse; ParseAsync is required for it.
func (r *Registry) HasAsync() bool {
	return r.hasAsync
}

func optionID(def *OptionDef, index int) string {
	if def.PreferredName != "" {
		return def.PreferredName
	}
	for _, n := range def.Names {
		if n != "" {
			return n
		}
	}
	if def.Positional != nil && *def.Positional != "" {
		return *def.Positional
	}
	return syntheticID(index)
}

func syntheticID(index int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if index < len(letters) {
		return "opt_" + string(letters[index])
	}
	return "opt_" + itoaSmall(index)
}

func itoaSmall(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func (r *Registry) registerNames(id string, def *OptionDef, index int) error {
	hasName := false
	for _, n := range def.Names {
		if n == "" {
			continue
		}
		hasName = true
		if err := r.claimName(n, id, index); err != nil {
			return err
		}
	}
	for _, n := range def.NegationNames {
		if n == "" {
			continue
		}
		if err := r.claimName(n, id, index); err != nil {
			return err
		}
		r.negationNames[n] = true
	}
	if !hasName && (def.Positional == nil) {
		return errNameEmpty(index)
	}
	return nil
}

func (r *Registry) claimName(name, id string, index int) error {
	if !nameRegex.MatchString(name) {
		return errNameInvalid(name)
	}
	if _, exists := r.byName[name]; exists {
		return errNameDuplicate(name)
	}
	r.byName[name] = id
	return nil
}

func (r *Registry) registerCluster(id string, def *OptionDef) error {
	for _, letter := range def.ClusterLetters {
		runes := []rune(letter)
		if len(runes) != 1 {
			return errClusterLetterInvalid(letter)
		}
		ch := runes[0]
		if _, exists := r.byCluster[ch]; exists {
			return errClusterLetterDuplicate(letter)
		}
		r.byCluster[ch] = id
	}
	return nil
}

func (r *Registry) registerPositional(id string, def *OptionDef) error {
	if def.Positional == nil {
		return nil
	}
	marker := *def.Positional
	if marker == "" {
		return errPositionalMarkerEmpty(id)
	}
	if err := r.claimName(marker, id, -1); err != nil {
		return err
	}
	r.positionalID = id
	r.positionalMarker = marker
	return nil
}

func validateEnumeration(id string, def *OptionDef) error {
	if def.ChoiceMap != nil && len(def.ChoiceMap) == 0 {
		return errChoicesEmpty(id)
	}
	if def.Choices != nil && len(def.Choices) == 0 {
		return errChoicesEmpty(id)
	}
	return nil
}

func validateVersion(def *OptionDef) error {
	if def.Kind != KindVersion || def.Version == nil {
		return nil
	}
	return def.Version.Validate()
}

// Lookup returns the id registered for an option name (including negation
// names and the positional marker).
func (r *Registry) Lookup(name string) (string, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// LookupCluster returns the id registered for a single-letter cluster
// alias.
func (r *Registry) LookupCluster(ch rune) (string, bool) {
	id, ok := r.byCluster[ch]
	return id, ok
}

// ShortClusterEnabled reports whether this catalog allows grouping
// single-letter flags behind one dash (e.g. "-abc").
func (r *Registry) ShortClusterEnabled() bool {
	return r.Catalog != nil && r.Catalog.ShortCluster
}

// IsNegationName reports whether name is a negation form of a flag option.
func (r *Registry) IsNegationName(name string) bool {
	return r.negationNames[name]
}

// PositionalMarker reports the catalog's positional marker token and the
// id of the option that owns it, if any.
func (r *Registry) PositionalMarker() (marker, id string, ok bool) {
	if r.positionalID == "" {
		return "", "", false
	}
	return r.positionalMarker, r.positionalID, true
}

// Entries returns the registered options in declaration order.
func (r *Registry) Entries() []*Entry {
	return r.entries
}

// EntryByID returns the entry for id, if registered.
func (r *Registry) EntryByID(id string) (*Entry, bool) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// PreferredName implements require.NameResolver.
func (r *Registry) PreferredName(id string) string {
	if e, ok := r.EntryByID(id); ok {
		if e.Def.PreferredName != "" {
			return e.Def.PreferredName
		}
		for _, n := range e.Def.Names {
			if n != "" {
				return n
			}
		}
	}
	return id
}

// ResolveID implements reqexpr.Resolver, resolving a textual requirement
// expression's option-name tokens (which may be any of an option's
// registered names) to its id.
func (r *Registry) ResolveID(name string) (string, bool) {
	return r.Lookup(name)
}

// ValueKind implements reqexpr.Resolver.
func (r *Registry) ValueKind(id string) reqexpr.ValueKind {
	e, ok := r.EntryByID(id)
	if !ok {
		return reqexpr.KindOther
	}
	switch e.Def.Kind {
	case KindFlag, KindBoolean:
		return reqexpr.KindBool
	case KindNumber, KindNumberArray:
		return reqexpr.KindNumber
	default:
		return reqexpr.KindString
	}
}

// Requires returns the compiled requirement tree for id, if any.
func (r *Registry) Requires(id string) (*require.Req, bool) {
	req, ok := r.requires[id]
	return req, ok
}

// RequiredIf returns the compiled conditional-requirement tree for id, if
// any.
func (r *Registry) RequiredIf(id string) (*require.Req, bool) {
	req, ok := r.requiredIf[id]
	return req, ok
}

func (r *Registry) compileRequirements() error {
	for _, e := range r.entries {
		def := e.Def
		req := def.Requires
		if req == nil && def.RequiresExpr != "" {
			expr, err := reqexpr.Parse(def.RequiresExpr)
			if err != nil {
				return err
			}
			req, err = reqexpr.Compile(expr, r)
			if err != nil {
				return err
			}
		}
		if req != nil {
			if err := r.checkReferencedIDsExist(e.ID, req); err != nil {
				return err
			}
			r.requires[e.ID] = req
		}

		reqIf := def.RequiredIf
		if reqIf == nil && def.RequiredIfExpr != "" {
			expr, err := reqexpr.Parse(def.RequiredIfExpr)
			if err != nil {
				return err
			}
			reqIf, err = reqexpr.Compile(expr, r)
			if err != nil {
				return err
			}
		}
		if reqIf != nil {
			if err := r.checkReferencedIDsExist(e.ID, reqIf); err != nil {
				return err
			}
			r.requiredIf[e.ID] = reqIf
		}
	}
	return nil
}

func (r *Registry) checkReferencedIDsExist(ownerID string, req *require.Req) error {
	for _, id := range req.ReferencedIDs() {
		if _, ok := r.EntryByID(id); !ok {
			return errUnknownReqTarget(ownerID, id)
		}
	}
	return r.checkValueMapTypes(req)
}

// checkValueMapTypes walks a requirement tree built programmatically (not
// via reqexpr, which already enforces this at literal-compile time) and
// rejects a ValueMap whose literal's Go type doesn't match its target
// option's declared kind.
func (r *Registry) checkValueMapTypes(req *require.Req) error {
	switch req.Kind() {
	case require.KindValueMap:
		rv := req.Value()
		if rv.Kind != require.ValueEquals {
			return nil
		}
		e, ok := r.EntryByID(req.ID())
		if !ok {
			return nil
		}
		if !valueMatchesKind(rv.Wanted, e.Def.Kind) {
			return errRequiredValueTypeMismatch(r.PreferredName(req.ID()))
		}
	case require.KindAll, require.KindOne:
		for _, c := range req.Children() {
			if err := r.checkValueMapTypes(c); err != nil {
				return err
			}
		}
	case require.KindNot:
		return r.checkValueMapTypes(req.Child())
	}
	return nil
}

func valueMatchesKind(v any, kind Kind) bool {
	switch kind {
	case KindFlag, KindBoolean:
		_, ok := v.(bool)
		return ok
	case KindNumber:
		switch v.(type) {
		case float64, int, int64:
			return true
		default:
			return false
		}
	case KindNumberArray:
		switch v.(type) {
		case []float64, []int, []any:
			return true
		default:
			return false
		}
	case KindStringArray:
		switch v.(type) {
		case []string, []any:
			return true
		default:
			return false
		}
	default:
		_, ok := v.(string)
		return ok
	}
}

// checkNoSelfReference detects a requirement graph where an option
// requires itself, directly or transitively, via DFS over `requires`
// edges (requiredIf is excluded: it's a constraint on absence, not a
// presence dependency, so it can't participate in a requires cycle).
func (r *Registry) checkNoSelfReference() error {
	const (
		white = iota
		gray
		black
	)
	color := map[string]int{}
	var visit func(id string) error
	visit = func(id string) error {
		switch color[id] {
		case gray:
			return errSelfReference(r.PreferredName(id))
		case black:
			return nil
		}
		color[id] = gray
		if req, ok := r.requires[id]; ok {
			for _, ref := range req.ReferencedIDs() {
				if err := visit(ref); err != nil {
					return err
				}
			}
		}
		color[id] = black
		return nil
	}

	ids := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// SimilarNames suggests registered names close to s by Gestalt similarity.
func (r *Registry) SimilarNames(s string, threshold float64) []string {
	var candidates []string
	for name := range r.byName {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates) // deterministic input order before stable-sorting by score
	return similarNames(s, candidates, threshold)
}
