// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parse

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/clargo/clargo/internal/clargoerr"
	"github.com/clargo/clargo/internal/host"
	"github.com/clargo/clargo/internal/message"
	"github.com/clargo/clargo/internal/schema"
)

// resolveVersion produces the version string for a version-kind option:
// either its fixed literal, or the result of running its Resolve hook
// through the host's file reader.
func resolveVersion(reader host.FileReader, def *schema.OptionDef) (string, error) {
	v := def.Version
	if v.Resolve == nil {
		return v.Value, nil
	}
	path, parse := v.Resolve()
	f, err := reader.Open(path)
	if err != nil {
		return "", clargoerr.VersionResolveError(path)
	}
	defer f.Close()
	contents, err := io.ReadAll(f)
	if err != nil {
		return "", clargoerr.VersionResolveError(path)
	}
	version, err := parse(contents)
	if err != nil {
		return "", clargoerr.VersionResolveError(path)
	}
	return version, nil
}

// optionGroup is one Group-named bucket of options, in first-seen order;
// the unnamed group (Group == "") is rendered without a heading.
type optionGroup struct {
	name    string
	entries []*schema.Entry
}

func groupEntries(entries []*schema.Entry) []optionGroup {
	var order []string
	byName := map[string]*optionGroup{}
	for _, e := range entries {
		if e.Def.Hide {
			continue
		}
		g, ok := byName[e.Def.Group]
		if !ok {
			order = append(order, e.Def.Group)
			g = &optionGroup{name: e.Def.Group}
			byName[e.Def.Group] = g
		}
		g.entries = append(g.entries, e)
	}
	out := make([]optionGroup, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// buildHelpMessage renders catalog's help text: intro, grouped option
// listing (each row carrying its constraint items), a synthesized or
// literal usage line, then footer. When def.UseFormat is set and the help
// option was invoked with an inline "json" value, the whole thing renders
// as a JsonMessage instead. When def.UseFilter is set and a non-"json"
// inline value was given, only options whose name or group contains it
// (case-insensitive) are listed. When def.UseNested is set, a command
// option's sub-catalog is expanded inline under its own heading.
func buildHelpMessage(reg *schema.Registry, def *schema.OptionDef, arg string, hasArg bool) message.Message {
	if hasArg && def != nil && def.UseFormat && strings.EqualFold(arg, "json") {
		return message.NewJsonMessage(catalogDoc(reg, def))
	}

	filter := ""
	if hasArg && def != nil && def.UseFilter && !strings.EqualFold(arg, "json") {
		filter = strings.ToLower(arg)
	}
	nested := def != nil && def.UseNested

	t := message.NewTerminalString(0)
	if reg.Catalog.Intro != "" {
		t.Word(reg.Catalog.Intro)
		t.Break()
	}
	renderGroups(t, reg, filter, nested, 0)

	usage := reg.Catalog.Usage
	if usage == "" {
		usage = synthesizeUsage(reg)
	}
	if usage != "" {
		t.Break()
		t.Word("Usage:")
		t.Word(usage)
	}
	if reg.Catalog.Footer != "" {
		t.Break()
		t.Word(reg.Catalog.Footer)
	}
	return message.NewAnsiMessage(t)
}

func renderGroups(t *message.TerminalString, reg *schema.Registry, filter string, nested bool, depth int) {
	for _, g := range groupEntries(reg.Entries()) {
		if g.name != "" {
			t.Break()
			t.Word(g.name + ":")
		}
		for _, e := range g.entries {
			if filter != "" && !matchesFilter(e, filter) {
				continue
			}
			t.Break()
			t.Word(optionHeading(e))
			if items := optionItems(e.Def); items != "" {
				t.Word(items)
			}
			if e.Def.Desc != "" {
				t.Word(e.Def.Desc)
			}
			if nested && e.Def.Kind == schema.KindCommand {
				sub, err := registerSubCatalog(e.Def)
				if err == nil && sub != nil {
					renderGroups(t, sub, filter, nested, depth+1)
				}
			}
		}
	}
}

func matchesFilter(e *schema.Entry, filter string) bool {
	if strings.Contains(strings.ToLower(e.Def.Group), filter) {
		return true
	}
	for _, n := range e.Def.Names {
		if strings.Contains(strings.ToLower(n), filter) {
			return true
		}
	}
	return false
}

func optionHeading(e *schema.Entry) string {
	names := ""
	for i, n := range e.Def.Names {
		if n == "" {
			continue
		}
		if i > 0 && names != "" {
			names += ", "
		}
		names += n
	}
	if names == "" {
		names = e.ID
	}
	return names
}

// optionItems assembles the bracketed constraint summary for one option:
// default, env var, regex, range, choices, deprecated marker, and a link,
// in that order, each only when declared.
func optionItems(def *schema.OptionDef) string {
	var items []string
	if def.Default != nil {
		items = append(items, fmt.Sprintf("default: %v", def.Default))
	}
	if def.EnvVar != "" {
		items = append(items, "env: "+def.EnvVar)
	}
	if def.Regex != nil {
		items = append(items, "pattern: "+def.Regex.String())
	}
	if def.Range != nil {
		items = append(items, "range: "+rangeText(def.Range))
	}
	if len(def.Choices) > 0 {
		items = append(items, "choices: "+strings.Join(def.Choices, ", "))
	}
	if def.Deprecated {
		items = append(items, "deprecated")
	}
	if def.Link != "" {
		items = append(items, "see: "+def.Link)
	}
	if len(items) == 0 {
		return ""
	}
	return "(" + strings.Join(items, "; ") + ")"
}

// synthesizeUsage builds a usage line from the schema when Catalog.Usage
// isn't set explicitly: one bracketed (optional) or bare (required) term
// per visible option, in declaration order, ending with the positional
// marker's term if the catalog has one.
func synthesizeUsage(reg *schema.Registry) string {
	var terms []string
	for _, e := range reg.Entries() {
		if e.Def.Hide || e.Def.Positional != nil {
			continue
		}
		term := usageTerm(e)
		if !e.Def.Required {
			term = "[" + term + "]"
		}
		terms = append(terms, term)
	}
	if marker, id, ok := reg.PositionalMarker(); ok {
		e, found := reg.EntryByID(id)
		name := marker
		if found && e.Def.PreferredName != "" {
			name = e.Def.PreferredName
		}
		term := "[" + marker + "] <" + name + ">"
		if found && e.Def.Kind.IsArray() {
			term += "..."
		}
		terms = append(terms, term)
	}
	return strings.Join(terms, " ")
}

func usageTerm(e *schema.Entry) string {
	var names []string
	for _, n := range e.Def.Names {
		if n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		names = []string{e.ID}
	}
	head := "(" + strings.Join(names, "|") + ")"
	if len(names) == 1 {
		head = names[0]
	}
	if e.Def.Kind.AcceptsValue() {
		head += " <value>"
	}
	return head
}

// catalogDoc builds the machine-readable form of a catalog's option list
// for the "json" help format, keyed by preferred name and sorted for
// deterministic output.
func catalogDoc(reg *schema.Registry, def *schema.OptionDef) map[string]any {
	out := map[string]any{}
	var names []string
	byName := map[string]*schema.Entry{}
	for _, e := range reg.Entries() {
		if e.Def.Hide {
			continue
		}
		name := reg.PreferredName(e.ID)
		names = append(names, name)
		byName[name] = e
	}
	sort.Strings(names)
	opts := make([]map[string]any, 0, len(names))
	for _, name := range names {
		e := byName[name]
		entry := map[string]any{
			"name":     name,
			"required": e.Def.Required,
		}
		if e.Def.Desc != "" {
			entry["desc"] = e.Def.Desc
		}
		if e.Def.Default != nil {
			entry["default"] = e.Def.Default
		}
		if len(e.Def.Choices) > 0 {
			entry["choices"] = e.Def.Choices
		}
		if def != nil && def.UseNested && e.Def.Kind == schema.KindCommand {
			if sub, err := registerSubCatalog(e.Def); err == nil && sub != nil {
				entry["sub"] = catalogDoc(sub, def)
			}
		}
		opts = append(opts, entry)
	}
	out["options"] = opts
	return out
}
