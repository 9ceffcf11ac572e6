package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/frogman715/hims-app-sub002/internal/config"
	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
)

// FileUploadInput is the DTO for document content uploads.
type FileUploadInput struct {
	UploadedBy uuid.UUID
	File       multipart.File
	Header     *multipart.FileHeader
}

// ContentUpload describes stored document content. The caller attaches the
// URL to a document on create or edit.
type ContentUpload struct {
	ContentURL  string `json:"content_url"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
}

// FileService stores document content in object storage.
type FileService interface {
	Upload(ctx context.Context, input FileUploadInput) (*ContentUpload, error)
	GetDownloadURL(ctx context.Context, key string) (string, error)
}

type fileService struct {
	storage port.ObjectStorage
	cfg     *config.S3Config
}

// NewFileService creates a new FileService implementation.
func NewFileService(storage port.ObjectStorage, cfg *config.S3Config) FileService {
	return &fileService{storage: storage, cfg: cfg}
}

func (s *fileService) Upload(ctx context.Context, input FileUploadInput) (*ContentUpload, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detected := http.DetectContentType(buf[:n])
	// Word containers sniff as zip or octet-stream; the extension decides.
	if fileType == domain.FileTypePDF && !strings.HasPrefix(detected, "application/pdf") {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	contentType := domain.AllowedFileTypes[fileType]
	key := fmt.Sprintf("documents/%s/%s", uuid.New(), input.Header.Filename)

	log.Printf("fileService.Upload: uploading %s (%s, %d bytes) by user %s",
		input.Header.Filename, contentType, input.Header.Size, input.UploadedBy)

	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("fileService.Upload: storage upload failed for %s: %v", key, err)
		return nil, domain.ErrUploadFailed
	}

	location := out.Location
	if location == "" {
		location = key
	}

	return &ContentUpload{
		ContentURL:  location,
		FileName:    input.Header.Filename,
		FileSize:    input.Header.Size,
		ContentType: contentType,
	}, nil
}

func (s *fileService) GetDownloadURL(ctx context.Context, key string) (string, error) {
	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning %s: %w", key, err)
	}
	return url, nil
}
