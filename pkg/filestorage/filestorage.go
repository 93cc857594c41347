package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

// Storage is the narrow contract the report layer has with file/photo
// storage. Anything beyond Save/Delete (thumbnails, CDN URLs) belongs to
// the collaborator behind this interface, not to this service.
type Storage interface {
	Save(dir, filename string, src io.Reader) (string, error)
	Delete(path string) error
	PublicURL(path string) string
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type LocalFileStorage struct {
	root string
}

func NewLocalFileStorage(root string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload root %q: %w", root, err)
	}
	return &LocalFileStorage{root: root}, nil
}

func (s *LocalFileStorage) Save(dir, filename string, src io.Reader) (string, error) {
	safe := unsafeChars.ReplaceAllString(filename, "_")
	fullDir := filepath.Join(s.root, dir)
	if err := os.MkdirAll(fullDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(fullDir, safe)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filepath.Join(dir, safe), nil
}

func (s *LocalFileStorage) Delete(path string) error {
	return os.Remove(filepath.Join(s.root, path))
}

func (s *LocalFileStorage) PublicURL(path string) string {
	return "/" + filepath.ToSlash(filepath.Join(s.root, path))
}
