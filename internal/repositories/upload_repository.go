package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrUploadNotFound = errors.New("upload not found")

type UploadRepository interface {
	Create(upload *models.Upload) error
	FindByID(id uint) (*models.Upload, error)
	FindByUser(userID uint, fileType string, limit, offset int) ([]models.Upload, int64, error)
	Update(upload *models.Upload) error
	Delete(id uint) error
	TotalSizeByUser(userID uint) (int64, error)
	RegisterAccess(id uint) error
}

type UploadRepositoryImpl struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &UploadRepositoryImpl{db: db}
}

func (r *UploadRepositoryImpl) Create(upload *models.Upload) error {
	return r.db.Create(upload).Error
}

func (r *UploadRepositoryImpl) FindByID(id uint) (*models.Upload, error) {
	var upload models.Upload
	if err := r.db.First(&upload, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return &upload, nil
}

func (r *UploadRepositoryImpl) FindByUser(userID uint, fileType string, limit, offset int) ([]models.Upload, int64, error) {
	query := r.db.Model(&models.Upload{}).Where("user_id = ?", userID)
	if fileType != "" {
		query = query.Where("file_type = ?", fileType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var uploads []models.Upload
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&uploads).Error
	if err != nil {
		return nil, 0, err
	}
	return uploads, total, nil
}

func (r *UploadRepositoryImpl) Update(upload *models.Upload) error {
	result := r.db.Save(upload)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUploadNotFound
	}
	return nil
}

func (r *UploadRepositoryImpl) Delete(id uint) error {
	result := r.db.Delete(&models.Upload{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUploadNotFound
	}
	return nil
}

// TotalSizeByUser возвращает суммарный размер файлов пользователя
func (r *UploadRepositoryImpl) TotalSizeByUser(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.Upload{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(size), 0)").
		Scan(&total).Error
	return total, err
}

func (r *UploadRepositoryImpl) RegisterAccess(id uint) error {
	return r.db.Model(&models.Upload{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"download_count":   gorm.Expr("download_count + 1"),
			"last_accessed_at": time.Now(),
		}).Error
}
