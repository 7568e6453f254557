package archiver

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ds124wfegd/WB_L3/webpconverter/internal/entity"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveDir(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  []string
	}{
		{
			name:  "two files",
			files: map[string]string{"photo.webp": "photo", "logo.webp": "logo"},
			want:  []string{"logo.webp", "photo.webp"},
		},
		{
			name:  "single file",
			files: map[string]string{"image.webp": "image"},
			want:  []string{"image.webp"},
		},
		{
			name:  "empty directory",
			files: map[string]string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srcDir := t.TempDir()
			for name, content := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(srcDir, name), []byte(content), 0644))
			}
			dest := filepath.Join(t.TempDir(), "converted.zip")

			entries, err := NewZipArchiver(DefaultLevel).ArchiveDir(srcDir, dest)
			require.NoError(t, err)
			assert.Equal(t, tt.want, entries)

			got := readZip(t, dest)
			assert.Len(t, got, len(tt.files))
			for name, content := range tt.files {
				assert.Equal(t, content, got[name])
			}
		})
	}
}

func TestArchiveDirIsFlat(t *testing.T) {
	srcDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "top.webp"), []byte("top"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "nested", "inner.webp"), []byte("inner"), 0644))

	dest := filepath.Join(t.TempDir(), "converted.zip")
	entries, err := NewZipArchiver(DefaultLevel).ArchiveDir(srcDir, dest)
	require.NoError(t, err)
	assert.Equal(t, []string{"top.webp"}, entries)

	zr, err := zip.OpenReader(dest)
	require.NoError(t, err)
	defer zr.Close()

	require.Len(t, zr.File, 1)
	assert.Equal(t, "top.webp", zr.File[0].Name)
	assert.Equal(t, zip.Deflate, zr.File[0].Method)
}

func TestArchiveDirCompressionLevels(t *testing.T) {
	srcDir := t.TempDir()
	payload := bytes.Repeat([]byte("webp webp webp "), 4096)
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "big.webp"), payload, 0644))

	for _, level := range []int{1, 5, 9, 0, 42} {
		dest := filepath.Join(t.TempDir(), "converted.zip")
		_, err := NewZipArchiver(level).ArchiveDir(srcDir, dest)
		require.NoError(t, err)

		info, err := os.Stat(dest)
		require.NoError(t, err)
		assert.Less(t, info.Size(), int64(len(payload)))
		assert.Equal(t, string(payload), readZip(t, dest)["big.webp"])
	}
}

func TestArchiveDirErrors(t *testing.T) {
	t.Run("missing source directory", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "converted.zip")
		_, err := NewZipArchiver(DefaultLevel).ArchiveDir(filepath.Join(t.TempDir(), "absent"), dest)
		assert.ErrorIs(t, err, entity.ErrArchive)
		assert.NoFileExists(t, dest)
	})

	t.Run("unwritable destination", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "absent", "converted.zip")
		_, err := NewZipArchiver(DefaultLevel).ArchiveDir(t.TempDir(), dest)
		assert.ErrorIs(t, err, entity.ErrArchive)
	})
}

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	files := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		files[f.Name] = string(data)
	}
	return files
}
