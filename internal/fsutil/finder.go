// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension recursively searches rootPath for files ending in any
// of extensions and returns their paths sorted.
func FindFilesByExtension(rootPath string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("at least one extension is required")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range extensions {
			if strings.HasSuffix(d.Name(), ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// FindFiles returns every file below rootPath whose name satisfies match,
// sorted. A missing rootPath yields no files.
func FindFiles(rootPath string, match func(name string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootPath && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() && match(d.Name()) {
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

// RemoveFiles deletes every file below rootPath whose name satisfies match.
// It returns the removed paths, sorted. A missing rootPath is not an error.
func RemoveFiles(rootPath string, match func(name string) bool) ([]string, error) {
	files, err := FindFiles(rootPath, match)
	if err != nil {
		return nil, err
	}
	for i, path := range files {
		if err := os.Remove(path); err != nil {
			return files[:i], err
		}
	}
	return files, nil
}
