// internal/domain/upload/entity.go
package upload

import (
	"time"

	"gorm.io/gorm"
)

// UploadedFile represents a stored product image
type UploadedFile struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OriginalName string         `json:"original_name" gorm:"not null"`
	Filename     string         `json:"filename" gorm:"not null;uniqueIndex"`
	Path         string         `json:"path" gorm:"not null"`
	URL          string         `json:"url" gorm:"not null"`
	MimeType     string         `json:"mime_type"`
	Size         int64          `json:"size"`
	Category     string         `json:"category" gorm:"default:'products'"`
	AltText      string         `json:"alt_text"`
	UploadedBy   uint           `json:"uploaded_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName overrides the table name
func (UploadedFile) TableName() string {
	return "uploaded_files"
}

// IsImage checks whether the file has an image mime type
func (f *UploadedFile) IsImage() bool {
	switch f.MimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
