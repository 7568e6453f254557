package archiver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ds124wfegd/WB_L3/webpconverter/internal/entity"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

const DefaultLevel = flate.BestCompression

type Archiver interface {
	// ArchiveDir zips every regular file directly inside srcDir into destPath,
	// without the directory prefix, and returns the entry names.
	ArchiveDir(srcDir, destPath string) ([]string, error)
}

type zipArchiver struct {
	level int
}

// NewZipArchiver returns a DEFLATE zip archiver. Levels outside 1..9 use DefaultLevel.
func NewZipArchiver(level int) Archiver {
	if level < flate.BestSpeed || level > flate.BestCompression {
		level = DefaultLevel
	}
	return &zipArchiver{level: level}
}

func (a *zipArchiver) ArchiveDir(srcDir, destPath string) (entries []string, err error) {
	names, err := regularFiles(srcDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrArchive, err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrArchive, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: %v", entity.ErrArchive, cerr)
		}
		if err != nil {
			entries = nil
			os.Remove(destPath)
		}
	}()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, a.level)
	})

	for _, name := range names {
		if err = addFile(zw, filepath.Join(srcDir, name), name); err != nil {
			zw.Close()
			return nil, fmt.Errorf("%w: %s: %v", entity.ErrArchive, name, err)
		}
	}

	if err = zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrArchive, err)
	}
	return names, nil
}

func addFile(zw *zip.Writer, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, file)
	return err
}

func regularFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
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
