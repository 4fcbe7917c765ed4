package manifest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator checks documents against schemas from a SchemaRegistry.
type Validator struct {
	registry *SchemaRegistry
}

// NewValidator creates a validator over the given schema registry.
func NewValidator(registry *SchemaRegistry) *Validator {
	return &Validator{registry: registry}
}

// Validate checks a document of the given kind. The document is any
// JSON-marshalable value; unknown kinds and schema violations are errors.
func (v *Validator) Validate(kind string, doc any) error {
	schemaStr, ok := v.registry.Schema(kind)
	if !ok {
		return fmt.Errorf("no schema registered for kind %q", kind)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(kind+".json", strings.NewReader(schemaStr)); err != nil {
		return fmt.Errorf("load schema for %s: %w", kind, err)
	}
	schema, err := compiler.Compile(kind + ".json")
	if err != nil {
		return fmt.Errorf("compile schema for %s: %w", kind, err)
	}

	// Round-trip through JSON so struct documents validate the same way
	// decoded ones do.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}

	if err := schema.Validate(generic); err != nil {
		return fmt.Errorf("%s document invalid: %w", kind, err)
	}
	return nil
}

// ManifestKind is the schema kind used for manifest documents.
const ManifestKind = "manifest"

// DefaultRegistry returns a schema registry preloaded with the manifest
// schema reflected from the Manifest struct.
func DefaultRegistry() (*SchemaRegistry, error) {
	reg := NewSchemaRegistry()
	if err := reg.Register(ManifestKind, Manifest{}); err != nil {
		return nil, err
	}
	return reg, nil
}
