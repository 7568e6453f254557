package database

import (
	"io"

	"github.com/ds124wfegd/WB_L3/webpconverter/internal/pkg/storage"
)

// WorkspaceRepository owns the scratch layout of a single conversion request:
// uploads/ for the originals, converted/ for the WebP files and the zip next to them.
type WorkspaceRepository interface {
	ID() string
	Prepare() error
	SaveUpload(name string, file io.Reader) (string, error)
	UploadPath(name string) string
	ConvertedPath(name string) string
	ConvertedDir() string
	ListConverted() ([]string, error)
	ArchivePath() string
	Purge() error
}

type fileWorkspaceRepository struct {
	id      string
	storage storage.FileStorage
}
