// Package discovery finds the source files to analyze under a set of
// directories.
package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the recognized source file suffixes.
var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// DefaultExcludeDirs are dependency and build directory names never descended into.
var DefaultExcludeDirs = []string{"node_modules", "dist", "build", ".next", ".git"}

// Options controls which files Walk returns.
type Options struct {
	// Extensions are matched against the end of the file name, case-sensitively
	Extensions []string

	// ExcludeDirs are directory base names to prune
	ExcludeDirs []string
}

// DefaultOptions returns the default extensions and excluded directories.
func DefaultOptions() Options {
	return Options{
		Extensions:  append([]string(nil), DefaultExtensions...),
		ExcludeDirs: append([]string(nil), DefaultExcludeDirs...),
	}
}

// Walk returns the paths of matching files under root, joined onto root and
// sorted. Unreadable subdirectories are skipped.
func Walk(ctx context.Context, root string, opts Options) ([]string, error) {
	exclude := make(map[string]bool, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		exclude[d] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			return nil //nolint:nilerr // skip inaccessible entries
		}

		if d.IsDir() {
			if path != root && exclude[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if hasExtension(d.Name(), opts.Extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func hasExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// ValidDirs returns the entries of dirs that exist and are directories, in order.
func ValidDirs(dirs []string) []string {
	var valid []string
	for _, d := range dirs {
		info, err := os.Stat(d)
		if err == nil && info.IsDir() {
			valid = append(valid, d)
		}
	}
	return valid
}
