package transport

import (
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/service"
)

const (
	imagesField   = "images"
	acceptedTypes = ".jpg,.jpeg,.png,.webp"

	msgProcessingFailed = "An error occurred while processing images."
	msgNoImages         = "No images provided."
	msgInvalidUpload    = "Invalid upload: expected a multipart form with an \"images\" field."
	msgTooLarge         = "Upload is too large."
)

type ConversionHandler struct {
	service      service.ConversionService
	maxBodyBytes int64
}

func NewConversionHandler(service service.ConversionService, maxBodyBytes int64) *ConversionHandler {
	return &ConversionHandler{service: service, maxBodyBytes: maxBodyBytes}
}
