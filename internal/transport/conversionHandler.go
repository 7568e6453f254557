package transport

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ds124wfegd/WB_L3/webpconverter/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *ConversionHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"field":    imagesField,
		"accept":   acceptedTypes,
		"maxFiles": h.service.MaxFiles(),
	})
}

func (h *ConversionHandler) Convert(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		if c.Request.ContentLength > h.maxBodyBytes {
			c.String(http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.String(http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		c.String(http.StatusBadRequest, msgInvalidUpload)
		return
	}
	defer form.RemoveAll()

	headers := form.File[imagesField]
	if len(headers) == 0 {
		c.String(http.StatusBadRequest, msgNoImages)
		return
	}
	if limit := h.service.MaxFiles(); len(headers) > limit {
		c.String(http.StatusBadRequest, "Too many files: at most %d images per request.", limit)
		return
	}

	archive, err := h.service.Convert(c.Request.Context(), uploadedFiles(headers))
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNoFiles):
			c.String(http.StatusBadRequest, msgNoImages)
		case errors.Is(err, entity.ErrTooManyFiles):
			c.String(http.StatusBadRequest, "Too many files: at most %d images per request.", h.service.MaxFiles())
		default:
			logrus.Errorf("Error in conversion: %v", err)
			c.String(http.StatusInternalServerError, msgProcessingFailed)
		}
		return
	}
	defer func() {
		if err := archive.Close(); err != nil {
			logrus.Errorf("failed to remove archive %s: %v", archive.Path, err)
		}
	}()

	c.Header("Content-Type", "application/zip")
	c.FileAttachment(archive.Path, archive.Name)

	if sent := int64(c.Writer.Size()); c.Writer.Status() == http.StatusOK && sent != archive.Size {
		logrus.WithFields(logrus.Fields{
			"sent": sent,
			"size": archive.Size,
		}).Warn("Download error: archive delivered partially")
	}
}

func uploadedFiles(headers []*multipart.FileHeader) []entity.UploadedFile {
	files := make([]entity.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, entity.UploadedFile{
			Name: fh.Filename,
			Size: fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files
}
