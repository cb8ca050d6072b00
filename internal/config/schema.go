// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// SchemaID is the $id of the generated config schema.
const SchemaID = "https://holomush.dev/schemas/starmap-config.schema.json"

var (
	compiledSchema *jschema.Schema
	compileErr     error
	compileOnce    sync.Once
)

// GenerateSchema reflects the JSON Schema for Config.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := r.Reflect(&Config{})
	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "starmap configuration"
	schema.Description = "Schema for starmap config.yaml files"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.In("config").Wrapf(err, "failed to marshal schema")
	}
	return data, nil
}

func schemaValidator() (*jschema.Schema, error) {
	compileOnce.Do(func() {
		data, err := GenerateSchema()
		if err != nil {
			compileErr = err
			return
		}
		doc, err := jschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = oops.In("config").Wrapf(err, "failed to parse schema JSON")
			return
		}
		c := jschema.NewCompiler()
		if err := c.AddResource("schema.json", doc); err != nil {
			compileErr = oops.In("config").Wrapf(err, "failed to add schema resource")
			return
		}
		compiledSchema, compileErr = c.Compile("schema.json")
	})
	return compiledSchema, compileErr
}

// ValidateYAML checks a YAML config document against the schema. An empty
// document is valid.
func ValidateYAML(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return oops.In("config").Code(CodeConfigInvalid).Wrapf(err, "invalid YAML")
	}
	if doc == nil {
		return nil
	}

	// Round-trip through JSON so numbers reach the validator as json.Number.
	raw, err := json.Marshal(doc)
	if err != nil {
		return oops.In("config").Code(CodeConfigInvalid).Wrapf(err, "config is not representable as JSON")
	}
	inst, err := jschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return oops.In("config").Code(CodeConfigInvalid).Wrapf(err, "config is not representable as JSON")
	}

	sch, err := schemaValidator()
	if err != nil {
		return err
	}
	if err := sch.Validate(inst); err != nil {
		return oops.In("config").Code(CodeConfigInvalid).Wrapf(err, "schema validation failed")
	}
	return nil
}
