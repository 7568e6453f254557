package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ds124wfegd/WB_L3/webpconverter/internal/database"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/entity"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxFiles    = 100
	DefaultArchiveName = "converted_images.zip"
)

func (s *conversionService) MaxFiles() int {
	return s.opts.MaxFiles
}

func (s *conversionService) Convert(ctx context.Context, files []entity.UploadedFile) (*entity.Archive, error) {
	if len(files) == 0 {
		return nil, entity.ErrNoFiles
	}
	if len(files) > s.opts.MaxFiles {
		return nil, fmt.Errorf("%w: got %d, limit %d", entity.ErrTooManyFiles, len(files), s.opts.MaxFiles)
	}

	if err := s.jobs.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.jobs.Release(1)

	start := time.Now()
	ws := s.newWorkspace(uuid.New().String())
	log := logrus.WithFields(logrus.Fields{
		"request_id": ws.ID(),
		"files":      len(files),
	})

	archive, err := s.run(ctx, ws, files)
	if err != nil {
		if perr := ws.Purge(); perr != nil {
			log.Errorf("failed to remove workspace: %v", perr)
		}
		log.WithField("duration", time.Since(start)).Errorf("conversion failed: %v", err)
		s.publish(ws.ID(), len(files), nil, err, start)
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"entries":  len(archive.Entries),
		"size":     archive.Size,
		"duration": time.Since(start),
	}).Info("conversion completed")
	s.publish(ws.ID(), len(files), archive.Entries, nil, start)

	return archive, nil
}

// run is the linear pipeline: prepare -> convert every file in order -> archive.
func (s *conversionService) run(ctx context.Context, ws database.WorkspaceRepository, files []entity.UploadedFile) (*entity.Archive, error) {
	if err := ws.Prepare(); err != nil {
		return nil, fmt.Errorf("%w: prepare workspace: %v", entity.ErrProcessing, err)
	}

	converted := make(map[string]*entity.ConvertedFile, len(files))
	for i := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := s.convertOne(ws, &files[i], i)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", entity.ErrProcessing, files[i].Name, err)
		}
		if prev, ok := converted[out.Name]; ok {
			logrus.WithField("request_id", ws.ID()).Warnf("%s overwrites %s converted from %s", files[i].Name, out.Name, prev.SourceName)
		}
		converted[out.Name] = out
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := checkConverted(ws, converted); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrProcessing, err)
	}

	entries, err := s.archiver.ArchiveDir(ws.ConvertedDir(), ws.ArchivePath())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrProcessing, err)
	}

	archive, err := entity.NewArchive(ws.ArchivePath(), s.opts.ArchiveName, entries, ws.Purge)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrProcessing, err)
	}
	return archive, nil
}

func (s *conversionService) convertOne(ws database.WorkspaceRepository, file *entity.UploadedFile, index int) (*entity.ConvertedFile, error) {
	if file.Open == nil {
		return nil, entity.ErrInvalidUpload
	}

	name := database.UploadName(file.Name)
	if name == "" {
		name = fmt.Sprintf("image-%d", index+1)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	file.StoredPath, err = ws.SaveUpload(name, src)
	src.Close()
	if err != nil {
		return nil, err
	}

	converted := &entity.ConvertedFile{
		Name:       s.processor.OutputName(name),
		SourceName: file.Name,
	}
	converted.StoredPath = ws.ConvertedPath(converted.Name)

	if err := s.processor.ConvertFile(file.StoredPath, converted.StoredPath); err != nil {
		return nil, err
	}
	return converted, nil
}

// checkConverted makes sure converted/ holds exactly one file per distinct output name.
func checkConverted(ws database.WorkspaceRepository, converted map[string]*entity.ConvertedFile) error {
	names, err := ws.ListConverted()
	if err != nil {
		return err
	}
	if len(names) != len(converted) {
		return fmt.Errorf("expected %d converted files, found %d", len(converted), len(names))
	}
	for _, name := range names {
		if _, ok := converted[name]; !ok {
			return fmt.Errorf("unexpected converted file %q", name)
		}
	}
	return nil
}

func (s *conversionService) publish(requestID string, files int, entries []string, err error, start time.Time) {
	if s.producer == nil {
		return
	}

	event := entity.ConversionEvent{
		RequestID:  requestID,
		Files:      files,
		Entries:    entries,
		Status:     entity.StatusCompleted,
		DurationMS: time.Since(start).Milliseconds(),
		At:         time.Now().UTC(),
	}
	if err != nil {
		event.Status = entity.StatusFailed
		event.Error = err.Error()
	}

	if perr := s.producer.SendMessage(s.opts.EventsTopic, event); perr != nil {
		logrus.WithField("request_id", requestID).Warnf("failed to publish conversion event: %v", perr)
	}
}
