// Package filestore persists uploaded recipe images on local disk and
// maps them to URL paths served by the reverse proxy.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	directoryPerms = 0o755
	recipesDir     = "recipes"
)

const DefaultURLPrefix = "/media"

type FileStore struct {
	baseDir       string
	urlPathPrefix string
}

func New(baseDir, urlPathPrefix string) *FileStore {
	return &FileStore{
		baseDir:       baseDir,
		urlPathPrefix: strings.Trim(urlPathPrefix, "/"),
	}
}

// WriteRecipeImage stores the image for a recipe and returns the URL
// path it will be served under.
func (f *FileStore) WriteRecipeImage(recipeID int64, suffix string, data []byte) (urlPath string, n int, err error) {
	rel := filepath.Join(recipesDir, fmt.Sprintf("%d%s", recipeID, suffix))
	n, err = f.write(rel, data)
	if err != nil {
		return "", n, err
	}
	return "/" + f.urlPathPrefix + "/" + filepath.ToSlash(rel), n, nil
}

// DeleteRecipeImage removes a previously written recipe image. A missing
// file is not an error.
func (f *FileStore) DeleteRecipeImage(urlPath string) error {
	rel := strings.TrimPrefix(strings.TrimLeft(urlPath, "/"), f.urlPathPrefix)
	rel = strings.TrimLeft(rel, "/")
	if rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("refusing to delete path %q", urlPath)
	}

	err := os.Remove(filepath.Join(f.baseDir, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}

func (f *FileStore) write(rel string, data []byte) (int, error) {
	if f == nil {
		return 0, nil
	}

	fullpath := filepath.Join(f.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(fullpath), directoryPerms); err != nil {
		return 0, fmt.Errorf("creating parent directories: %w", err)
	}

	file, err := os.Create(fullpath)
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	defer func() { _ = file.Close() }()

	n, err := file.Write(data)
	if err != nil {
		return n, fmt.Errorf("writing file: %w", err)
	}
	return n, nil
}

// BaseDirectory exposes the root the store writes under.
func (f *FileStore) BaseDirectory() string {
	return f.baseDir
}

// SuffixFromName extracts the file suffix from a name, empty when none.
func SuffixFromName(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx == -1 {
		return ""
	}
	return name[idx:]
}

// URLPathFor is a convenience used in tests to predict where an image
// lands for a given recipe.
func (f *FileStore) URLPathFor(recipeID int64, suffix string) string {
	return "/" + f.urlPathPrefix + "/" + recipesDir + "/" + strconv.FormatInt(recipeID, 10) + suffix
}
