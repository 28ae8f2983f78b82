// internal/domain/upload/service.go
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/storefront/internal/config"
	"gorm.io/gorm"
)

// Service stores product images on local disk and records them in the
// database. URLs are served from the CDN base when one is configured.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new upload service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UploadRequest represents an image upload request
type UploadRequest struct {
	File       multipart.File        `json:"-"`
	Header     *multipart.FileHeader `json:"-"`
	Category   string                `json:"category"`
	AltText    string                `json:"alt_text"`
	UploadedBy uint                  `json:"uploaded_by"`
}

// ListRequest represents image list query parameters
type ListRequest struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
	Category string `form:"category"`
}

// ListResponse represents images with pagination
type ListResponse struct {
	Files []UploadedFile `json:"files"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// Upload validates and stores a single image. The generated filename is a
// UUID so uploads never collide or leak the original name into URLs.
func (s *Service) Upload(req *UploadRequest) (*UploadedFile, error) {
	if err := s.validateFile(req.Header); err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = "products"
	}

	ext := strings.ToLower(filepath.Ext(req.Header.Filename))
	filename := uuid.New().String() + ext
	relativePath := filepath.Join(category, filename)
	fullPath := filepath.Join(s.config.Storage.LocalPath, relativePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, req.File); err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	uploadedFile := UploadedFile{
		OriginalName: req.Header.Filename,
		Filename:     filename,
		Path:         relativePath,
		URL:          s.fileURL(relativePath),
		MimeType:     mimeTypeForExt(ext),
		Size:         req.Header.Size,
		Category:     category,
		AltText:      req.AltText,
		UploadedBy:   req.UploadedBy,
	}

	if err := s.db.Create(&uploadedFile).Error; err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	return &uploadedFile, nil
}

// List retrieves uploaded files with pagination
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	var files []UploadedFile
	var total int64

	query := s.db.Model(&UploadedFile{})
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count files: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve files: %w", err)
	}

	return &ListResponse{
		Files: files,
		Total: total,
		Page:  req.Page,
		Limit: req.Limit,
	}, nil
}

// Delete removes an uploaded file and its database record. Deleting a file
// that is already gone from disk is not an error.
func (s *Service) Delete(id uint) error {
	var uploadedFile UploadedFile
	if err := s.db.First(&uploadedFile, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return fmt.Errorf("failed to find file: %w", err)
	}

	fullPath := filepath.Join(s.config.Storage.LocalPath, uploadedFile.Path)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	if err := s.db.Delete(&uploadedFile).Error; err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}

// Private helpers

func (s *Service) validateFile(header *multipart.FileHeader) error {
	if header.Size > s.config.Upload.MaxSize {
		return fmt.Errorf("file too large: max %d bytes", s.config.Upload.MaxSize)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("file type .%s is not allowed", ext)
}

func (s *Service) fileURL(relativePath string) string {
	// Stored paths use the OS separator, URLs always use forward slashes
	urlPath := filepath.ToSlash(relativePath)
	if s.config.Storage.CDNBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.Storage.CDNBaseURL, "/"), urlPath)
	}
	return fmt.Sprintf("/uploads/%s", urlPath)
}

func mimeTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}
