package service

import (
	"context"

	"github.com/ds124wfegd/WB_L3/webpconverter/internal/database"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/entity"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/pkg/archiver"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/pkg/kafka"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/pkg/processor"
	"golang.org/x/sync/semaphore"
)

type ConversionService interface {
	// Convert turns every file into WebP and packs the results into one zip.
	// The caller must Close the returned archive.
	Convert(ctx context.Context, files []entity.UploadedFile) (*entity.Archive, error)
	MaxFiles() int
}

type Options struct {
	WorkDir           string
	MaxFiles          int
	MaxConcurrentJobs int
	ArchiveName       string
	EventsTopic       string
}

type WorkspaceFactory func(id string) database.WorkspaceRepository

type conversionService struct {
	opts         Options
	newWorkspace WorkspaceFactory
	processor    processor.ImageProcessor
	archiver     archiver.Archiver
	producer     kafka.Producer
	jobs         *semaphore.Weighted
}

func NewConversionService(opts Options, processor processor.ImageProcessor, archiver archiver.Archiver, producer kafka.Producer) ConversionService {
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = DefaultMaxFiles
	}
	if opts.MaxConcurrentJobs <= 0 {
		opts.MaxConcurrentJobs = 1
	}
	if opts.ArchiveName == "" {
		opts.ArchiveName = DefaultArchiveName
	}

	workDir := opts.WorkDir
	return &conversionService{
		opts: opts,
		newWorkspace: func(id string) database.WorkspaceRepository {
			return database.NewWorkspaceRepository(workDir, id)
		},
		processor: processor,
		archiver:  archiver,
		producer:  producer,
		jobs:      semaphore.NewWeighted(int64(opts.MaxConcurrentJobs)),
	}
}
