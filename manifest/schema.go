package manifest

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/invopop/jsonschema"
)

// SchemaRegistry holds JSON schemas for the documents this layer exchanges:
// the manifest itself and per-integration configuration objects. Schemas are
// registered once at startup; duplicate kinds are a configuration error.
type SchemaRegistry struct {
	mu        sync.RWMutex
	schemas   map[string]string
	reflector *jsonschema.Reflector
}

// NewSchemaRegistry creates an empty schema registry.
func NewSchemaRegistry() *SchemaRegistry {
	r := &SchemaRegistry{
		schemas:   make(map[string]string),
		reflector: new(jsonschema.Reflector),
	}
	r.reflector.ExpandedStruct = true
	return r
}

// Register adds a schema for a document kind. model may be a raw JSON schema
// string, a schema map, or a Go struct to reflect a schema from.
func (r *SchemaRegistry) Register(kind string, model any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[kind]; exists {
		return fmt.Errorf("schema kind already registered: %s", kind)
	}

	switch v := model.(type) {
	case string:
		r.schemas[kind] = v
	case []byte:
		r.schemas[kind] = string(v)
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal schema map: %w", err)
		}
		r.schemas[kind] = string(b)
	default:
		s := r.reflector.Reflect(model)
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal reflected schema: %w", err)
		}
		r.schemas[kind] = string(b)
	}
	return nil
}

// Schema returns the JSON schema for a document kind.
func (r *SchemaRegistry) Schema(kind string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[kind]
	return s, ok
}

// Kinds returns all registered document kinds, sorted.
func (r *SchemaRegistry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
