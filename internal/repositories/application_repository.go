package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("application already exists")
)

type ApplicationRepository interface {
	Create(application *models.JobApplication) error
	FindByID(id uint) (*models.JobApplication, error)
	FindByJob(jobID uint, limit, offset int) ([]models.JobApplication, int64, error)
	FindByApplicant(userID uint, limit, offset int) ([]models.JobApplication, int64, error)
	ExistsForApplicant(jobID, applicantID uint) (bool, error)
	Update(application *models.JobApplication) error
	Delete(id uint) error
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(application *models.JobApplication) error {
	exists, err := r.ExistsForApplicant(application.JobID, application.ApplicantID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyApplied
	}
	return r.db.Create(application).Error
}

func (r *ApplicationRepositoryImpl) FindByID(id uint) (*models.JobApplication, error) {
	var application models.JobApplication
	err := r.db.Preload("Job").Preload("Job.Company").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByJob(jobID uint, limit, offset int) ([]models.JobApplication, int64, error) {
	query := r.db.Model(&models.JobApplication{}).Where("job_id = ?", jobID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.JobApplication
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

func (r *ApplicationRepositoryImpl) FindByApplicant(userID uint, limit, offset int) ([]models.JobApplication, int64, error) {
	query := r.db.Model(&models.JobApplication{}).Where("applicant_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.JobApplication
	err := query.Preload("Job").Preload("Job.Company").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

func (r *ApplicationRepositoryImpl) ExistsForApplicant(jobID, applicantID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.JobApplication{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) Update(application *models.JobApplication) error {
	result := r.db.Save(application)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) Delete(id uint) error {
	result := r.db.Delete(&models.JobApplication{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
