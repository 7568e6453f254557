package storage

import (
	"io"
	"os"
	"path/filepath"
	"sort"
)

type FileStorage interface {
	Save(path string, data io.Reader) error
	DeleteAll() error
	List(dir string) ([]string, error)
	FullPath(path string) string
}

type fileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) FileStorage {
	return &fileStorage{basePath: basePath}
}

func (s *fileStorage) Save(path string, data io.Reader) error {
	file, err := s.create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (s *fileStorage) create(path string) (*os.File, error) {
	fullPath := s.FullPath(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, err
	}

	return os.Create(fullPath)
}

// DeleteAll removes the storage root with everything under it.
func (s *fileStorage) DeleteAll() error {
	return os.RemoveAll(s.basePath)
}

// List returns the names of regular files directly inside dir, sorted.
// A missing dir lists as empty.
func (s *fileStorage) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(s.FullPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *fileStorage) FullPath(path string) string {
	return filepath.Join(s.basePath, path)
}

// EmptyDir removes every entry of dirPath. A missing directory is a no-op.
func EmptyDir(dirPath string) error {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dirPath, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
