// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package catalogdoc

import (
	"regexp"

	"github.com/gobwas/glob"

	"github.com/clargo/clargo/internal/clargoerr"
	"github.com/clargo/clargo/internal/schema"
)

// ToCatalog converts a loaded Doc into a schema.Catalog. Callers that need
// to attach Parse/Complete/DefaultFn/Function callbacks do so afterward by
// walking the returned Catalog's Options.
func (d *Doc) ToCatalog() (*schema.Catalog, error) {
	cat := &schema.Catalog{
		ShortCluster: d.ShortCluster,
		Intro:        d.Intro,
		Usage:        d.Usage,
		Footer:       d.Footer,
	}
	for i := range d.Options {
		def, err := d.Options[i].toOptionDef()
		if err != nil {
			return nil, err
		}
		cat.Options = append(cat.Options, def)
	}
	return cat, nil
}

func (o *OptionDoc) toOptionDef() (*schema.OptionDef, error) {
	kind, ok := kindByName[o.Kind]
	if !ok {
		return nil, clargoerr.SchemaError("unknown option kind %q", o.Kind)
	}

	def := &schema.OptionDef{
		Kind:           kind,
		Names:          o.Names,
		PreferredName:  o.PreferredName,
		NegationNames:  o.NegationNames,
		ClusterLetters: o.ClusterLetters,
		Positional:     o.Positional,
		Append:         o.Append,
		Unique:         o.Unique,
		Limit:          o.Limit,
		Choices:        o.Choices,
		Trim:           o.Trim,
		TruthNames:     o.TruthNames,
		FalsityNames:   o.FalsityNames,
		CaseSensitive:  o.CaseSensitive,
		Default:        o.Default,
		Fallback:       o.Fallback,
		EnvVar:         o.EnvVar,
		Required:       o.Required,
		RequiresExpr:   o.RequiresExpr,
		RequiredIfExpr: o.RequiredIfExpr,
		UseNested:      o.UseNested,
		UseFilter:      o.UseFilter,
		UseFormat:      o.UseFormat,
		Break:          o.Break,
		Deprecated:     o.Deprecated,
		Hide:           o.Hide,
		Group:          o.Group,
		Desc:           o.Desc,
		Link:           o.Link,
	}

	caseMode, ok := caseByName[o.Case]
	if !ok {
		return nil, clargoerr.SchemaError("unknown case mode %q", o.Case)
	}
	def.Case = caseMode

	roundMode, ok := roundByName[o.Round]
	if !ok {
		return nil, clargoerr.SchemaError("unknown round mode %q", o.Round)
	}
	def.Round = roundMode

	if o.Separator != "" {
		re, err := regexp.Compile(o.Separator)
		if err != nil {
			return nil, clargoerr.SchemaError("invalid separator regex: %v", err)
		}
		def.Separator = re
	}
	if o.Regex != "" {
		re, err := regexp.Compile(o.Regex)
		if err != nil {
			return nil, clargoerr.SchemaError("invalid regex: %v", err)
		}
		def.Regex = re
	}
	if o.Glob != "" {
		g, err := glob.Compile(o.Glob)
		if err != nil {
			return nil, clargoerr.SchemaError("invalid glob: %v", err)
		}
		def.Glob = g
	}
	if o.Range != nil {
		r := &schema.NumberRange{}
		if o.Range.Min != nil {
			r.Min, r.HasMin = *o.Range.Min, true
		}
		if o.Range.Max != nil {
			r.Max, r.HasMax = *o.Range.Max, true
		}
		def.Range = r
	}
	if o.Version != nil {
		def.Version = &schema.VersionDef{Value: o.Version.Value}
	}

	return def, nil
}
