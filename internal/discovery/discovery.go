// Package discovery finds the source files a run operates on: a recursive
// walk below the workplace root, an extension filter, and glob-style exclude
// patterns (from the ignore file and -e flags).
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ListFiles walks workplace recursively and returns the files whose extension
// (without the dot) is in extensions, excluding any whose workplace-relative
// path matches one of the exclude patterns. Returned paths are joined with
// workplace and appear in walk order.
//
// A workplace that does not exist or is not a directory is an error; the
// caller aborts the run before scheduling any work.
func ListFiles(workplace string, extensions, excludes []string) ([]string, error) {
	info, err := os.Stat(workplace)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("No such folder: %s", workplace)
	}

	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[ext] = struct{}{}
	}

	var files []string
	walkErr := filepath.WalkDir(workplace, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.TrimPrefix(filepath.Ext(d.Name()), ".")
		if ext == "" {
			return nil
		}
		if _, ok := extSet[ext]; !ok {
			return nil
		}

		rel, err := filepath.Rel(workplace, path)
		if err != nil {
			return err
		}
		if matchesAny(filepath.ToSlash(rel), excludes) {
			return nil
		}

		files = append(files, filepath.Join(workplace, rel))
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return files, nil
}

func matchesAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if fnmatch(pattern, rel) {
			return true
		}
	}
	return false
}
