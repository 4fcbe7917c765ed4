package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prunekit/prunekit-host-sdk/artifact/entities"
	"github.com/prunekit/prunekit-host-sdk/artifact/values"
)

// Cache stores downloaded model files under
// <root>/<name>/<version>/model.onnx.
type Cache struct {
	root string
}

// NewCache creates a model cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{root: dir}
}

// DefaultCacheDir is where models are cached unless overridden.
func DefaultCacheDir() string {
	return filepath.Join(os.Getenv("HOME"), ".prunekit", "models")
}

func (c *Cache) modelPath(ref values.StubReference) string {
	return filepath.Join(c.root, ref.Name(), ref.Version(), "model.onnx")
}

// Save persists a model stream and returns its path. Writes go through a
// temp file so a failed download never leaves a half-written model behind.
func (c *Cache) Save(ctx context.Context, art *entities.Artifact, model io.Reader) (string, error) {
	path := c.modelPath(art.Reference())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, model); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("commit model: %w", err)
	}
	return path, nil
}

// Path returns the cached model path for a concrete reference, if present.
func (c *Cache) Path(ref values.StubReference) (string, bool) {
	path := c.modelPath(ref)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
