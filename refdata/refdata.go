// Package refdata decodes the embedded YAML reference tables used by the
// catalog and registry packages, checking each document against its JSON
// schema before it is decoded into Go types.
package refdata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaBase = "https://dl-generator.local/schemas/"

// Decode validates doc against schema and unmarshals it into out.
// name identifies the document in error messages and in the schema URL.
func Decode(name string, doc, schema []byte, out interface{}) error {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	url := schemaBase + name + ".schema.json"
	if err := c.AddResource(url, bytes.NewReader(schema)); err != nil {
		return fmt.Errorf("load %s schema: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return fmt.Errorf("compile %s schema: %w", name, err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	// round trip through JSON so the validator only sees JSON value types
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalize %s: %w", name, err)
	}
	var normalized interface{}
	if err := json.Unmarshal(b, &normalized); err != nil {
		return fmt.Errorf("normalize %s: %w", name, err)
	}
	if err := compiled.Validate(normalized); err != nil {
		return fmt.Errorf("%s does not match schema: %w", name, err)
	}

	if err := yaml.Unmarshal(doc, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
