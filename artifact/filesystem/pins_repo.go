package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PinsRepo persists the pins file.
type PinsRepo struct {
	path string
}

// NewPinsRepo creates a repo over the given pins file path.
func NewPinsRepo(path string) *PinsRepo {
	return &PinsRepo{path: path}
}

// DefaultPinsPath is where the pins file lives unless overridden.
func DefaultPinsPath() string {
	return filepath.Join(os.Getenv("HOME"), ".prunekit", "model-pins.yaml")
}

// Load reads the pins file. A missing file yields a fresh empty document.
func (r *PinsRepo) Load() (*Pins, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewPins(), nil
		}
		return nil, fmt.Errorf("read pins file: %w", err)
	}

	var pins Pins
	if err := yaml.Unmarshal(data, &pins); err != nil {
		return nil, fmt.Errorf("parse pins file %s: %w", r.path, err)
	}
	if pins.Version != pinsVersion {
		return nil, fmt.Errorf("unsupported pins file version %d (want %d)", pins.Version, pinsVersion)
	}
	if pins.Models == nil {
		pins.Models = make(map[string]ModelPin)
	}
	return &pins, nil
}

// Save writes the pins file, creating its directory when needed.
func (r *PinsRepo) Save(pins *Pins) error {
	data, err := yaml.Marshal(pins)
	if err != nil {
		return fmt.Errorf("encode pins: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create pins dir: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return fmt.Errorf("write pins file: %w", err)
	}
	return nil
}
