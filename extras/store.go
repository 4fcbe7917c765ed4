package extras

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// selectionFile is the YAML structure persisted by SelectionStore.
type selectionFile struct {
	Updated      time.Time `yaml:"updated"`
	Capabilities []string  `yaml:"capabilities"`
}

// storeConfig holds configuration for the SelectionStore.
type storeConfig struct {
	path     string
	dirPerm  os.FileMode
	filePerm os.FileMode
}

func defaultStoreConfig() storeConfig {
	return storeConfig{
		path:     filepath.Join(os.Getenv("HOME"), ".prunekit", "extras.yaml"),
		dirPerm:  0o755,
		filePerm: 0o600,
	}
}

// StoreOption configures a SelectionStore instance.
type StoreOption func(*storeConfig)

// WithPath sets the path to the selection file.
func WithPath(path string) StoreOption {
	return func(c *storeConfig) {
		if path != "" {
			c.path = path
		}
	}
}

// WithFilePermissions sets the file permissions for the selection file.
func WithFilePermissions(perm os.FileMode) StoreOption {
	return func(c *storeConfig) {
		c.filePerm = perm
	}
}

// WithDirPermissions sets the permissions for the containing directory.
func WithDirPermissions(perm os.FileMode) StoreOption {
	return func(c *storeConfig) {
		c.dirPerm = perm
	}
}

// SelectionStore persists the user's chosen capability set between
// invocations so install tooling can re-resolve it without re-prompting.
type SelectionStore struct {
	config storeConfig
}

// NewSelectionStore creates a SelectionStore with the given options.
func NewSelectionStore(opts ...StoreOption) *SelectionStore {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SelectionStore{config: cfg}
}

// Path returns the location of the selection file.
func (s *SelectionStore) Path() string {
	return s.config.path
}

// Load returns the persisted capability names, sorted.
// A missing file is an empty selection, not an error.
func (s *SelectionStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.config.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read selection file: %w", err)
	}

	var file selectionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse selection file %s: %w", s.config.path, err)
	}

	sort.Strings(file.Capabilities)
	return file.Capabilities, nil
}

// Save persists the capability names, replacing any previous selection.
func (s *SelectionStore) Save(names []string) error {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	data, err := yaml.Marshal(selectionFile{
		Updated:      time.Now().UTC(),
		Capabilities: sorted,
	})
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.config.path), s.config.dirPerm); err != nil {
		return fmt.Errorf("create selection dir: %w", err)
	}
	if err := os.WriteFile(s.config.path, data, s.config.filePerm); err != nil {
		return fmt.Errorf("write selection file: %w", err)
	}
	return nil
}
