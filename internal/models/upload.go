package models

import (
	"time"

	"gorm.io/datatypes"
)

type Upload struct {
	BaseModel
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	OriginalName string `gorm:"column:original_name" json:"file_name"`
	FileType     string `json:"file_type"` // "image", "document", "other"
	Path         string `gorm:"not null" json:"-"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"file_size"`
	IsPublic     bool   `gorm:"default:false" json:"is_public"`

	URL             string         `gorm:"column:url" json:"file_url"`
	ThumbnailPath   string         `gorm:"column:thumbnail_path" json:"-"`
	Variants        datatypes.JSON `gorm:"column:variants" json:"variants,omitempty"`
	Metadata        datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	StorageProvider string         `gorm:"column:storage_provider;default:'local'" json:"-"`
	DownloadCount   int            `gorm:"column:download_count;default:0" json:"download_count"`
	LastAccessedAt  *time.Time     `gorm:"column:last_accessed_at" json:"last_accessed_at,omitempty"`
}
