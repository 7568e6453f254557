package entity

import "errors"

var (
	// Request errors
	ErrNoFiles       = errors.New("no images provided")
	ErrTooManyFiles  = errors.New("too many images in one request")
	ErrInvalidUpload = errors.New("invalid upload")

	// Processing errors
	ErrProcessing       = errors.New("image processing failed")
	ErrUnsupportedImage = errors.New("unsupported or corrupt image")
	ErrArchive          = errors.New("archive creation failed")
)
