package database

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ds124wfegd/WB_L3/webpconverter/internal/entity"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/pkg/storage"
	"github.com/sirupsen/logrus"
)

const (
	uploadsDir   = "uploads"
	convertedDir = "converted"
	archiveFile  = "converted.zip"
)

func NewWorkspaceRepository(workDir, id string) WorkspaceRepository {
	return &fileWorkspaceRepository{
		id:      id,
		storage: storage.NewFileStorage(filepath.Join(workDir, id)),
	}
}

func (r *fileWorkspaceRepository) ID() string {
	return r.id
}

// Prepare creates both working directories and makes sure converted/ is empty.
func (r *fileWorkspaceRepository) Prepare() error {
	for _, dir := range []string{uploadsDir, convertedDir} {
		if err := os.MkdirAll(r.storage.FullPath(dir), 0755); err != nil {
			return err
		}
	}
	return storage.EmptyDir(r.ConvertedDir())
}

// UploadName returns the last element of a client supplied file name,
// or "" when nothing usable is left (empty, ".", "..", "/").
func UploadName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return ""
	}
	return base
}

// SaveUpload stores file under the base of name and returns its path.
func (r *fileWorkspaceRepository) SaveUpload(name string, file io.Reader) (string, error) {
	base := UploadName(name)
	if base == "" {
		return "", fmt.Errorf("%w: file name %q", entity.ErrInvalidUpload, name)
	}

	if err := r.storage.Save(filepath.Join(uploadsDir, base), file); err != nil {
		return "", err
	}
	return r.UploadPath(base), nil
}

func (r *fileWorkspaceRepository) UploadPath(name string) string {
	return r.storage.FullPath(filepath.Join(uploadsDir, name))
}

func (r *fileWorkspaceRepository) ConvertedPath(name string) string {
	return r.storage.FullPath(filepath.Join(convertedDir, name))
}

func (r *fileWorkspaceRepository) ConvertedDir() string {
	return r.storage.FullPath(convertedDir)
}

func (r *fileWorkspaceRepository) ListConverted() ([]string, error) {
	return r.storage.List(convertedDir)
}

func (r *fileWorkspaceRepository) ArchivePath() string {
	return r.storage.FullPath(archiveFile)
}

// Purge removes the whole workspace, archive included.
func (r *fileWorkspaceRepository) Purge() error {
	return r.storage.DeleteAll()
}

// SweepWorkspaces removes request workspaces left behind by a previous run.
func SweepWorkspaces(workDir string) error {
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		logrus.WithField("count", len(entries)).Warn("removing stale workspaces")
	}
	return storage.EmptyDir(workDir)
}
