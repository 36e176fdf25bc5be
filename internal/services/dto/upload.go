package dto

import (
	"time"

	"jobboard_backend/internal/models"
)

// UploadResponse - представление загруженного файла
type UploadResponse struct {
	ID           uint      `json:"id"`
	OriginalName string    `json:"original_name"`
	FileType     string    `json:"file_type"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	IsPublic     bool      `json:"is_public"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewUploadResponse(upload *models.Upload, thumbnailURL string) *UploadResponse {
	return &UploadResponse{
		ID:           upload.ID,
		OriginalName: upload.OriginalName,
		FileType:     upload.FileType,
		MimeType:     upload.MimeType,
		Size:         upload.Size,
		IsPublic:     upload.IsPublic,
		URL:          upload.URL,
		ThumbnailURL: thumbnailURL,
		CreatedAt:    upload.CreatedAt,
	}
}

// UploadListRequest - параметры списка файлов
type UploadListRequest struct {
	FileType string `form:"file_type" validate:"omitempty,oneof=image document resume other"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// UploadListResponse - страница файлов
type UploadListResponse struct {
	Files     []UploadResponse `json:"files"`
	Total     int64            `json:"total"`
	TotalSize int64            `json:"total_size"`
	Page      int              `json:"page"`
	PageSize  int              `json:"page_size"`
}
