package manifest

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// EncodeYAML renders the manifest as YAML.
func EncodeYAML(m *Manifest) ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return data, nil
}

// DecodeYAML parses YAML bytes into a Manifest.
func DecodeYAML(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}
