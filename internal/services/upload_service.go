package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/imageprocessor"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/storage"
	"jobboard_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UploadService interface {
	Upload(ctx context.Context, db *gorm.DB, userID uint, file *multipart.FileHeader, isPublic bool) (*dto.UploadResponse, error)
	Get(ctx context.Context, db *gorm.DB, userID uint, isAdmin bool, id uint) (*dto.UploadResponse, error)
	Download(ctx context.Context, db *gorm.DB, userID uint, isAdmin bool, id uint) (io.ReadCloser, *models.Upload, error)
	List(ctx context.Context, db *gorm.DB, userID uint, req *dto.UploadListRequest) (*dto.UploadListResponse, error)
	Delete(ctx context.Context, db *gorm.DB, userID uint, isAdmin bool, id uint) error
}

type UploadServiceImpl struct {
	cfg       *config.Config
	store     storage.Storage
	processor *imageprocessor.Processor

	uploadRepo func(db *gorm.DB) repositories.UploadRepository
}

func NewUploadService(cfg *config.Config, store storage.Storage) UploadService {
	return &UploadServiceImpl{
		cfg:        cfg,
		store:      store,
		processor:  imageprocessor.NewProcessor(cfg.Upload.ImageQuality),
		uploadRepo: repositories.NewUploadRepository,
	}
}

var mimeByExtension = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// classifyFile определяет категорию файла по mime типу и имени
func classifyFile(mimeType, name string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	case strings.Contains(strings.ToLower(name), "resume") || strings.Contains(strings.ToLower(name), "cv"):
		return "resume"
	case mimeType == "application/pdf" || strings.Contains(mimeType, "msword") ||
		strings.Contains(mimeType, "wordprocessingml") || mimeType == "text/plain":
		return "document"
	default:
		return "other"
	}
}

func (s *UploadServiceImpl) detectMimeType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if mt, ok := mimeByExtension[strings.ToLower(filepath.Ext(file.Filename))]; ok {
		return mt
	}
	return "application/octet-stream"
}

func (s *UploadServiceImpl) isAllowedType(mimeType string) bool {
	if len(s.cfg.Upload.AllowedTypes) == 0 {
		return true
	}
	for _, allowed := range s.cfg.Upload.AllowedTypes {
		if allowed == mimeType {
			return true
		}
		// "image/*" разрешает любой image тип
		if strings.HasSuffix(allowed, "/*") && strings.HasPrefix(mimeType, strings.TrimSuffix(allowed, "*")) {
			return true
		}
	}
	return false
}

func (s *UploadServiceImpl) Upload(ctx context.Context, db *gorm.DB, userID uint, file *multipart.FileHeader, isPublic bool) (*dto.UploadResponse, error) {
	if s.cfg.Upload.MaxSize > 0 && file.Size > s.cfg.Upload.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	mimeType := s.detectMimeType(file)
	if !s.isAllowedType(mimeType) {
		return nil, apperrors.ErrInvalidFileType
	}

	repo := s.uploadRepo(db)

	// квота на суммарный объем файлов пользователя
	if s.cfg.Upload.MaxUserStorage > 0 {
		used, err := repo.TotalSizeByUser(userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if used+file.Size > s.cfg.Upload.MaxUserStorage {
			return nil, apperrors.ErrFileTooLarge
		}
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	fileType := classifyFile(mimeType, file.Filename)
	path := fmt.Sprintf("users/%d/%s%s", userID, uuid.NewString(), ext)

	if err := s.store.Save(ctx, path, src, mimeType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	upload := &models.Upload{
		UserID:          userID,
		OriginalName:    file.Filename,
		FileType:        fileType,
		Path:            path,
		MimeType:        mimeType,
		Size:            file.Size,
		IsPublic:        isPublic,
		StorageProvider: s.cfg.Storage.Type,
	}

	if url, err := s.store.GetURL(ctx, path); err == nil {
		upload.URL = url
	}

	// для изображений генерируется превью
	if fileType == "image" {
		if thumbPath, meta, err := s.makeThumbnail(ctx, file, path); err != nil {
			logger.Warn("failed to generate thumbnail", "path", path, "error", err)
		} else {
			upload.ThumbnailPath = thumbPath
			upload.Metadata = meta
		}
	}

	if err := repo.Create(upload); err != nil {
		// запись не создана, подчищаем уже сохраненный файл
		if delErr := s.store.Delete(ctx, path); delErr != nil {
			logger.Error("failed to clean up orphan file", "path", path, "error", delErr)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("file uploaded", "upload_id", upload.ID, "user_id", userID, "size", file.Size, "type", fileType)
	return s.toResponse(ctx, upload), nil
}

func (s *UploadServiceImpl) makeThumbnail(ctx context.Context, file *multipart.FileHeader, originalPath string) (string, datatypes.JSON, error) {
	src, err := file.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	width, height, err := imageprocessor.Dimensions(src)
	if err != nil {
		return "", nil, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", nil, err
	}

	resized, format, err := s.processor.Resize(src, imageprocessor.VariantThumbnail)
	if err != nil {
		return "", nil, err
	}

	ext := "." + format
	if format == "jpeg" {
		ext = ".jpg"
	}
	base := strings.TrimSuffix(originalPath, filepath.Ext(originalPath))
	thumbPath := base + "_thumb" + ext

	if err := s.store.Save(ctx, thumbPath, resized, "image/"+format); err != nil {
		return "", nil, err
	}

	meta, err := json.Marshal(map[string]int{"width": width, "height": height})
	if err != nil {
		return "", nil, err
	}
	return thumbPath, datatypes.JSON(meta), nil
}

func (s *UploadServiceImpl) Get(ctx context.Context, db *gorm.DB, userID uint, isAdmin bool, id uint) (*dto.UploadResponse, error) {
	upload, err := s.find(db, userID, isAdmin, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, upload), nil
}

func (s *UploadServiceImpl) Download(ctx context.Context, db *gorm.DB, userID uint, isAdmin bool, id uint) (io.ReadCloser, *models.Upload, error) {
	upload, err := s.find(db, userID, isAdmin, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.store.Get(ctx, upload.Path)
	if err != nil {
		return nil, nil, apperrors.ErrFileNotFound
	}

	if err := s.uploadRepo(db).RegisterAccess(id); err != nil {
		logger.Warn("failed to register file access", "upload_id", id, "error", err)
	}
	return reader, upload, nil
}

func (s *UploadServiceImpl) List(ctx context.Context, db *gorm.DB, userID uint, req *dto.UploadListRequest) (*dto.UploadListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	repo := s.uploadRepo(db)
	uploads, total, err := repo.FindByUser(userID, req.FileType, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalSize, err := repo.TotalSizeByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.UploadListResponse{
		Files:     make([]dto.UploadResponse, 0, len(uploads)),
		Total:     total,
		TotalSize: totalSize,
		Page:      page,
		PageSize:  pageSize,
	}
	for i := range uploads {
		resp.Files = append(resp.Files, *s.toResponse(ctx, &uploads[i]))
	}
	return resp, nil
}

func (s *UploadServiceImpl) Delete(ctx context.Context, db *gorm.DB, userID uint, isAdmin bool, id uint) error {
	upload, err := s.find(db, userID, isAdmin, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, upload.Path); err != nil {
		logger.Error("failed to delete stored file", "path", upload.Path, "error", err)
	}
	if upload.ThumbnailPath != "" {
		if err := s.store.Delete(ctx, upload.ThumbnailPath); err != nil {
			logger.Error("failed to delete thumbnail", "path", upload.ThumbnailPath, "error", err)
		}
	}

	if err := s.uploadRepo(db).Delete(id); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("file deleted", "upload_id", id, "user_id", userID)
	return nil
}

// find возвращает файл с проверкой прав: чужие файлы видит только
// администратор, публичные файлы доступны всем
func (s *UploadServiceImpl) find(db *gorm.DB, userID uint, isAdmin bool, id uint) (*models.Upload, error) {
	upload, err := s.uploadRepo(db).FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUploadNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if upload.UserID != userID && !isAdmin && !upload.IsPublic {
		return nil, apperrors.ErrFileNotFound
	}
	return upload, nil
}

func (s *UploadServiceImpl) toResponse(ctx context.Context, upload *models.Upload) *dto.UploadResponse {
	thumbnailURL := ""
	if upload.ThumbnailPath != "" {
		if url, err := s.store.GetURL(ctx, upload.ThumbnailPath); err == nil {
			thumbnailURL = url
		}
	}
	return dto.NewUploadResponse(upload, thumbnailURL)
}
