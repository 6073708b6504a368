// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package catalogdoc

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/clargo/clargo/internal/clargoerr"
	"github.com/clargo/clargo/internal/schema"
)

// LoadCatalogFile reads a catalog document from path (".yaml"/".yml"/
// ".json", all parsed as YAML since JSON is a YAML subset) and converts it
// into a schema.Catalog, without registering it — the caller still needs
// to attach any Parse/Complete/DefaultFn/Function callbacks the document
// couldn't express before registering (see Catalog.Options).
func LoadCatalogFile(path string) (*schema.Catalog, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" && ext != ".json" {
		return nil, clargoerr.SchemaError("unsupported catalog document extension %q", ext)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, clargoerr.SchemaError("reading catalog document %s: %v", path, err)
	}

	var doc Doc
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, clargoerr.SchemaError("decoding catalog document %s: %v", path, err)
	}

	return doc.ToCatalog()
}

// LoadFile reads and registers a catalog document in one step, for callers
// that have no programmatic callbacks to attach.
func LoadFile(path string) (*schema.Registry, error) {
	cat, err := LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	return schema.Register(cat)
}
