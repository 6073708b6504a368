// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package catalogdoc loads a schema.Catalog from a YAML or JSON document
// instead of Go struct literals, for callers that want their option set
// declared data-first (a CLI whose flags come from a config repo, or a
// generated catalog shared with another tool). It covers the
// document-expressible subset of schema.OptionDef: callbacks
// (Parse/Complete/DefaultFn/Function) have no textual form and must still
// be attached programmatically after loading, via Catalog.Options.
package catalogdoc

import "github.com/clargo/clargo/internal/schema"

// Doc is the root of a catalog document.
type Doc struct {
	ShortCluster bool        `koanf:"shortCluster" json:"shortCluster,omitempty" jsonschema:"description=Allow grouping single-letter flags behind one dash."`
	Intro        string      `koanf:"intro" json:"intro,omitempty"`
	Usage        string      `koanf:"usage" json:"usage,omitempty"`
	Footer       string      `koanf:"footer" json:"footer,omitempty"`
	Options      []OptionDoc `koanf:"options" json:"options" jsonschema:"required"`
}

// NumberRangeDoc is the document form of schema.NumberRange.
type NumberRangeDoc struct {
	Min    *float64 `koanf:"min" json:"min,omitempty"`
	Max    *float64 `koanf:"max" json:"max,omitempty"`
}

// VersionDoc is the document form of schema.VersionDef. Only the fixed
// literal form is document-expressible; Resolve hooks are programmatic.
type VersionDoc struct {
	Value string `koanf:"value" json:"value,omitempty"`
}

// OptionDoc is the document form of schema.OptionDef, restricted to the
// fields a YAML/JSON document can express directly.
type OptionDoc struct {
	Kind string `koanf:"kind" json:"kind" jsonschema:"enum=flag,enum=boolean,enum=string,enum=number,enum=stringArray,enum=numberArray,enum=help,enum=version,required"`

	Names          []string `koanf:"names" json:"names,omitempty"`
	PreferredName  string   `koanf:"preferredName" json:"preferredName,omitempty"`
	NegationNames  []string `koanf:"negationNames" json:"negationNames,omitempty"`
	ClusterLetters []string `koanf:"clusterLetters" json:"clusterLetters,omitempty"`
	Positional     *string  `koanf:"positional" json:"positional,omitempty"`

	Separator string `koanf:"separator" json:"separator,omitempty"`
	Append    bool   `koanf:"append" json:"append,omitempty"`
	Unique    bool   `koanf:"unique" json:"unique,omitempty"`
	Limit     int    `koanf:"limit" json:"limit,omitempty"`

	Regex   string          `koanf:"regex" json:"regex,omitempty"`
	Range   *NumberRangeDoc `koanf:"range" json:"range,omitempty"`
	Glob    string          `koanf:"glob" json:"glob,omitempty"`
	Choices []string        `koanf:"choices" json:"choices,omitempty"`

	Trim  bool   `koanf:"trim" json:"trim,omitempty"`
	Case  string `koanf:"case" json:"case,omitempty" jsonschema:"enum=,enum=lower,enum=upper"`
	Round string `koanf:"round" json:"round,omitempty" jsonschema:"enum=,enum=trunc,enum=ceil,enum=floor,enum=nearest"`

	TruthNames    []string `koanf:"truthNames" json:"truthNames,omitempty"`
	FalsityNames  []string `koanf:"falsityNames" json:"falsityNames,omitempty"`
	CaseSensitive bool     `koanf:"caseSensitive" json:"caseSensitive,omitempty"`

	Default  any    `koanf:"default" json:"default,omitempty"`
	Fallback any    `koanf:"fallback" json:"fallback,omitempty"`
	EnvVar   string `koanf:"envVar" json:"envVar,omitempty"`

	Required       bool   `koanf:"required" json:"required,omitempty"`
	RequiresExpr   string `koanf:"requires" json:"requires,omitempty"`
	RequiredIfExpr string `koanf:"requiredIf" json:"requiredIf,omitempty"`

	UseNested bool        `koanf:"useNested" json:"useNested,omitempty"`
	UseFilter bool        `koanf:"useFilter" json:"useFilter,omitempty"`
	UseFormat bool        `koanf:"useFormat" json:"useFormat,omitempty"`
	Version   *VersionDoc `koanf:"version" json:"version,omitempty"`

	Break      bool   `koanf:"break" json:"break,omitempty"`
	Deprecated bool   `koanf:"deprecated" json:"deprecated,omitempty"`
	Hide       bool   `koanf:"hide" json:"hide,omitempty"`
	Group      string `koanf:"group" json:"group,omitempty"`
	Desc       string `koanf:"desc" json:"desc,omitempty"`
	Link       string `koanf:"link" json:"link,omitempty"`
}

var kindByName = map[string]schema.Kind{
	"flag":        schema.KindFlag,
	"boolean":     schema.KindBoolean,
	"string":      schema.KindString,
	"number":      schema.KindNumber,
	"stringArray": schema.KindStringArray,
	"numberArray": schema.KindNumberArray,
	"help":        schema.KindHelp,
	"version":     schema.KindVersion,
}

var caseByName = map[string]schema.CaseMode{
	"":      schema.CaseNone,
	"lower": schema.CaseLower,
	"upper": schema.CaseUpper,
}

var roundByName = map[string]schema.RoundMode{
	"":        schema.RoundNone,
	"trunc":   schema.RoundTrunc,
	"ceil":    schema.RoundCeil,
	"floor":   schema.RoundFloor,
	"nearest": schema.RoundNearest,
}
