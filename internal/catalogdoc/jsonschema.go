// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package catalogdoc

import (
	"bytes"
	"encoding/json"

	invopopschema "github.com/invopop/jsonschema"
	jsonschemav6 "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/clargo/clargo/internal/clargoerr"
)

const schemaResourceURL = "clargo://catalog-doc.json"

// GenerateSchema reflects Doc's Go struct shape into a JSON Schema
// document, for editors and CI to validate a catalog document against
// before it's ever loaded.
func GenerateSchema() ([]byte, error) {
	reflector := &invopopschema.Reflector{
		DoNotReference: true,
	}
	sch := reflector.Reflect(&Doc{})
	return json.MarshalIndent(sch, "", "  ")
}

// Validate checks raw (YAML or JSON bytes, already normalized to JSON by
// the caller) against the schema GenerateSchema produces.
func Validate(raw []byte) error {
	schemaBytes, err := GenerateSchema()
	if err != nil {
		return err
	}

	compiler := jsonschemav6.NewCompiler()
	schemaDoc, err := jsonschemav6.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return clargoerr.SchemaError("parsing generated catalog schema: %v", err)
	}
	if err := compiler.AddResource(schemaResourceURL, schemaDoc); err != nil {
		return clargoerr.SchemaError("registering catalog schema: %v", err)
	}
	sch, err := compiler.Compile(schemaResourceURL)
	if err != nil {
		return clargoerr.SchemaError("compiling catalog schema: %v", err)
	}

	instance, err := jsonschemav6.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return clargoerr.SchemaError("parsing catalog document: %v", err)
	}
	if err := sch.Validate(instance); err != nil {
		return clargoerr.SchemaError("catalog document failed validation: %v", err)
	}
	return nil
}
