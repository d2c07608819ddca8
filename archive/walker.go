// Package archive walks zip containers (docx packages are zip archives).
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// WalkFunc is called for every regular file in the container which name
// starts with requested prefix. Returning an error stops the walk.
type WalkFunc func(file *zip.File) error

// Walk opens zip archive at path and walks its files.
func Walk(name, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(name)
	if err != nil {
		return err
	}
	defer r.Close()
	return walk(&r.Reader, prefix, walkFn)
}

// WalkReader walks zip archive read from r.
func WalkReader(r io.ReaderAt, size int64, prefix string, walkFn WalkFunc) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return err
	}
	return walk(zr, prefix, walkFn)
}

// walk visits files in the order they are stored in the archive. Any entry
// with absolute path or ".." component makes the whole container invalid.
func walk(r *zip.Reader, prefix string, walkFn WalkFunc) error {
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := walkFn(f); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile returns uncompressed content of the archive entry.
func ReadFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(strings.ReplaceAll(name, `\`, "/"), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
