// Package filesystem provides local persistence for the artifact layer:
// the pins file recording resolved model versions and the model cache.
package filesystem

import (
	"time"
)

// pinsVersion is the current pins file format version.
const pinsVersion = 1

// ModelPin records how one model stub was resolved.
type ModelPin struct {
	Fetched   time.Time `yaml:"fetched,omitempty"`
	Requested string    `yaml:"requested"`
	Resolved  string    `yaml:"resolved"`
	Source    string    `yaml:"source"`
	Digest    string    `yaml:"sha"`
}

// Pins is the YAML structure of the pins file. Keys are model repository
// paths without the version tag.
type Pins struct {
	Generated time.Time           `yaml:"generated"`
	Models    map[string]ModelPin `yaml:"models"`
	Version   int                 `yaml:"pins_version"`
}

// NewPins creates an empty pins document.
func NewPins() *Pins {
	return &Pins{
		Generated: time.Now().UTC(),
		Models:    make(map[string]ModelPin),
		Version:   pinsVersion,
	}
}

// Get returns the pin for a repository path.
func (p *Pins) Get(repository string) (ModelPin, bool) {
	pin, ok := p.Models[repository]
	return pin, ok
}

// Set records a pin, replacing any previous entry for the repository.
func (p *Pins) Set(repository string, pin ModelPin) {
	if p.Models == nil {
		p.Models = make(map[string]ModelPin)
	}
	p.Models[repository] = pin
	p.Generated = time.Now().UTC()
}
