package manifest

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverPackages walks a source tree and returns the files selected by the
// include globs minus anything an exclude glob matches. Patterns use
// doublestar syntax ("prunekit/**/*.go"). The result feeds the manifest's
// packaged file list.
func DiscoverPackages(fsys fs.FS, include, exclude []string) ([]string, error) {
	seen := make(map[string]struct{})

	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := fs.Stat(fsys, match)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", match, err)
			}
			if info.IsDir() {
				continue
			}
			seen[match] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for match := range seen {
		excluded, err := matchesAny(exclude, match)
		if err != nil {
			return nil, err
		}
		if !excluded {
			out = append(out, match)
		}
	}

	sort.Strings(out)
	return out, nil
}

func matchesAny(patterns []string, path string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
