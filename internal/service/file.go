package service

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/voblako/voblako/internal/model"
	"github.com/voblako/voblako/internal/repository"
	"github.com/voblako/voblako/internal/seed"
	"github.com/voblako/voblako/internal/storage"
)

const (
	fallbackFilename    = "Безымянный файл"
	fallbackContentType = "application/octet-stream"
)

// FileService pairs metadata rows with content objects so the two always
// change together.
type FileService struct {
	files    repository.FileRepository
	contents storage.Storage
}

func NewFileService(files repository.FileRepository, contents storage.Storage) *FileService {
	return &FileService{
		files:    files,
		contents: contents,
	}
}

// Create stores a new file: fresh UUID, size from the byte length,
// timestamps set to now. It has no caller-visible failure mode beyond
// storage errors.
func (s *FileService) Create(file multipart.File, header *multipart.FileHeader) (*model.FileMetadata, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	filename := header.Filename
	if filename == "" {
		filename = fallbackFilename
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = fallbackContentType
	}

	now := time.Now().UTC()
	meta := &model.FileMetadata{
		UUID:        uuid.New().String(),
		OwnerID:     seed.DefaultOwnerID,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(content)),
		IsDeleted:   false,
		UploadTime:  now,
		UpdateTime:  now,
	}

	err = s.contents.Save(meta.UUID, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to save content: %w", err)
	}

	err = s.files.Create(meta)
	if err != nil {
		// Metadata insert failed, drop the orphaned content object
		delErr := s.contents.Delete(meta.UUID)
		if delErr != nil {
			slog.Error("failed to clean up content after metadata failure", "error", delErr, "uuid", meta.UUID)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return meta, nil
}

func (s *FileService) Metadata(id string) (*model.FileMetadata, error) {
	return s.files.ByID(id)
}

func (s *FileService) List(opts model.ListOptions) ([]*model.FileMetadata, error) {
	return s.files.List(opts)
}

// Payload returns metadata plus raw content for download.
func (s *FileService) Payload(id string) (*model.StoredFile, error) {
	meta, err := s.files.ByID(id)
	if err != nil {
		return nil, err
	}

	content, err := s.contents.Load(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load content for %s: %w", id, err)
	}

	return &model.StoredFile{Metadata: meta, Content: content}, nil
}

// Rename replaces the filename and bumps the update time. Validation of
// the new name happens at the endpoint layer.
func (s *FileService) Rename(id, filename string) (*model.FileMetadata, error) {
	return s.files.Rename(id, filename)
}

// Replace atomically swaps content and metadata. Empty filename or content
// type in the upload keep the existing values.
func (s *FileService) Replace(id string, file multipart.File, header *multipart.FileHeader) (*model.FileMetadata, error) {
	existing, err := s.files.ByID(id)
	if err != nil {
		return nil, err
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	filename := header.Filename
	if filename == "" {
		filename = existing.Filename
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = existing.ContentType
	}

	err = s.contents.Save(id, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to save content: %w", err)
	}

	return s.files.Replace(id, filename, contentType, int64(len(content)))
}

// SoftDelete flags the file deleted. Content is retained so the record can
// be revived by a later replace.
func (s *FileService) SoftDelete(id string) (*model.FileMetadata, error) {
	return s.files.SoftDelete(id)
}
