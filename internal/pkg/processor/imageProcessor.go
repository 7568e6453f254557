package processor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/entity"
	"github.com/gen2brain/webp"
	"github.com/sirupsen/logrus"

	_ "golang.org/x/image/webp"
)

const (
	DefaultQuality = 80
	TargetExt      = ".webp"
)

type ImageProcessor interface {
	Convert(src io.Reader, dst io.Writer) error
	ConvertFile(srcPath, dstPath string) error
	OutputName(name string) string
}

type imageProcessor struct {
	quality int
}

// NewImageProcessor returns a WebP encoder. Quality outside 1..100 falls back to DefaultQuality.
func NewImageProcessor(quality int) ImageProcessor {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &imageProcessor{quality: quality}
}

func (p *imageProcessor) Convert(src io.Reader, dst io.Writer) error {
	// gif decodes to its first frame
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrUnsupportedImage, err)
	}

	if err := webp.Encode(dst, img, webp.Options{Quality: p.quality}); err != nil {
		return fmt.Errorf("failed to encode webp: %w", err)
	}
	return nil
}

// ConvertFile writes the WebP rendition of srcPath to dstPath.
// A partially written dstPath is removed on failure.
func (p *imageProcessor) ConvertFile(srcPath, dstPath string) (err error) {
	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return err
	}

	out, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dstPath)
		}
	}()

	if err = p.Convert(in, out); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"source": filepath.Base(srcPath),
		"target": filepath.Base(dstPath),
	}).Debug("image converted")
	return nil
}

// OutputName maps an upload name to its converted name: photo.jpg -> photo.webp.
// Names without a usable base (image, .png) keep the full name.
func (p *imageProcessor) OutputName(name string) string {
	name = filepath.Base(name)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = name
	}
	return base + TargetExt
}
