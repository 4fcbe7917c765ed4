// Package entities holds the artifact layer's domain entities.
package entities

import (
	"github.com/prunekit/prunekit-host-sdk/artifact/values"
)

// Metadata describes a model artifact independent of where it is stored.
type Metadata struct {
	Name        string
	Version     string
	Description string
	Framework   string // e.g. "pytorch", "onnx"
	Task        string // e.g. "detection", "classification"
}

// NewMetadata creates artifact metadata.
func NewMetadata(name, version, description, framework, task string) Metadata {
	return Metadata{
		Name:        name,
		Version:     version,
		Description: description,
		Framework:   framework,
		Task:        task,
	}
}

// Artifact is one resolved model artifact: a concrete reference, its content
// digest, and its metadata.
type Artifact struct {
	ref      values.StubReference
	digest   values.Digest
	metadata Metadata
}

// NewArtifact creates an artifact entity.
func NewArtifact(ref values.StubReference, digest values.Digest, metadata Metadata) *Artifact {
	return &Artifact{ref: ref, digest: digest, metadata: metadata}
}

// Reference returns the artifact's stub reference.
func (a *Artifact) Reference() values.StubReference {
	return a.ref
}

// Digest returns the artifact's content digest.
func (a *Artifact) Digest() values.Digest {
	return a.digest
}

// Metadata returns the artifact's metadata.
func (a *Artifact) Metadata() Metadata {
	return a.metadata
}
