package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"studium-server/internal/domain"
	"studium-server/pkg/errors"
)

// DocumentService owns the upload lifecycle: content sniffing, size limits,
// persistence to the upload directory and registration in the store.
type DocumentService struct {
	store       domain.DocumentStore
	logger      domain.Logger
	uploadPath  string
	maxFileSize int64
}

func NewDocumentService(store domain.DocumentStore, cfg domain.Config, logger domain.Logger) *DocumentService {
	return &DocumentService{
		store:       store,
		logger:      logger,
		uploadPath:  cfg.GetUploadPath(),
		maxFileSize: cfg.GetMaxFileSize(),
	}
}

// detectMediaType sniffs the file content. The client-supplied filename and
// Content-Type are advisory only.
func detectMediaType(data []byte) (domain.MediaType, error) {
	mime := mimetype.Detect(data)
	switch {
	case mime.Is("application/pdf"):
		return domain.MediaTypePDF, nil
	case strings.HasPrefix(mime.String(), "image/"):
		return domain.MediaTypeImage, nil
	default:
		return "", domain.ErrUnsupportedFormat
	}
}

// Upload validates and saves an uploaded file, returning the registered
// document in uploaded state. Extraction is a separate, explicit step.
func (s *DocumentService) Upload(filename string, data []byte) (*domain.Document, error) {
	if len(data) == 0 {
		return nil, errors.NewValidationError("uploaded file is empty")
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, errors.NewFileTooLargeError(
			fmt.Sprintf("file exceeds the %d byte limit", s.maxFileSize))
	}
	mediaType, err := detectMediaType(data)
	if err != nil {
		return nil, errors.NewUnsupportedFormatError("only PDF and image files are supported")
	}

	if err := os.MkdirAll(s.uploadPath, 0o755); err != nil {
		return nil, errors.NewInternalError("failed to prepare upload directory", err)
	}

	id := uuid.New().String()
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = defaultExtension(mediaType)
	}
	path := filepath.Join(s.uploadPath, id+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, errors.NewInternalError("failed to save uploaded file", err)
	}

	doc := &domain.Document{
		ID:         id,
		Filename:   filename,
		MediaType:  mediaType,
		FilePath:   path,
		FileSize:   int64(len(data)),
		Status:     domain.StatusUploaded,
		UploadedAt: time.Now(),
	}
	if err := s.store.Put(doc); err != nil {
		return nil, errors.NewInternalError("failed to register document", err)
	}

	s.logger.Info("document uploaded",
		"document_id", id,
		"filename", filename,
		"media_type", string(mediaType),
		"size", fmt.Sprintf("%d", len(data)))
	return doc, nil
}

func defaultExtension(mediaType domain.MediaType) string {
	if mediaType == domain.MediaTypePDF {
		return ".pdf"
	}
	return ".img"
}

// ReadFile loads the stored bytes for a document.
func (s *DocumentService) ReadFile(doc *domain.Document) ([]byte, error) {
	data, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return nil, fmt.Errorf("reading stored file for %s: %w", doc.ID, err)
	}
	return data, nil
}

// Delete removes both the stored file and the registry entry. A missing file
// on disk is not an error; the registry entry is authoritative.
func (s *DocumentService) Delete(id string) error {
	doc, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove stored file", "document_id", id, "error", err.Error())
	}
	return s.store.Delete(id)
}
