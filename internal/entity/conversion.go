package entity

import (
	"io"
	"os"
	"sync"
	"time"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// UploadedFile is one image of a conversion batch.
type UploadedFile struct {
	Name       string
	Size       int64
	StoredPath string
	Open       func() (io.ReadCloser, error)
}

// ConvertedFile is the WebP rendition of an UploadedFile.
type ConvertedFile struct {
	Name       string
	SourceName string
	StoredPath string
}

// Archive is a finalized zip on disk. Close removes it together with
// the workspace it was built in; it is safe to call more than once.
type Archive struct {
	Path    string
	Name    string
	Entries []string
	Size    int64

	closeOnce sync.Once
	closeErr  error
	release   func() error
}

func NewArchive(path, name string, entries []string, release func() error) (*Archive, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &Archive{
		Path:    path,
		Name:    name,
		Entries: entries,
		Size:    info.Size(),
		release: release,
	}, nil
}

func (a *Archive) Close() error {
	a.closeOnce.Do(func() {
		if a.release != nil {
			a.closeErr = a.release()
		}
	})
	return a.closeErr
}

// ConversionEvent is published once per conversion request.
type ConversionEvent struct {
	RequestID  string    `json:"request_id"`
	Files      int       `json:"files"`
	Entries    []string  `json:"entries,omitempty"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	At         time.Time `json:"at"`
}
