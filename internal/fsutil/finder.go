// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths, sorted.
func FindFilesByExtension(fsys afero.Fs, rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := afero.Walk(fsys, rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), extension) {
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

// ExpandPaths resolves a mix of files and directories into a list of files.
// Files are kept as given, whatever their extension; directories are searched
// with FindFilesByExtension. Duplicates are dropped, first occurrence wins.
func ExpandPaths(fsys afero.Fs, paths []string, extension string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string

	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, p := range paths {
		isDir, err := afero.IsDir(fsys, p)
		if err != nil {
			return nil, err
		}
		if !isDir {
			add(p)
			continue
		}
		found, err := FindFilesByExtension(fsys, p, extension)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return out, nil
}
