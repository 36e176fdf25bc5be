package repositories

import (
	"errors"
	"strings"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uint) (*models.Job, error)
	FindWithFilter(criteria JobFilter) ([]models.Job, int64, error)
	FindByPoster(userID uint, limit, offset int) ([]models.Job, int64, error)
	Update(job *models.Job) error
	Delete(id uint) error
	SetActive(id uint, active bool) error
	DeactivateExpired(now time.Time) (int64, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

type JobFilter struct {
	Search          string
	Location        string
	CompanyID       uint
	EmploymentType  models.EmploymentType
	ExperienceLevel models.ExperienceLevel
	RemoteOnly      bool
	SalaryMin       *int
	OnlyActive      bool
	Page            int
	PageSize        int
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Company").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindWithFilter(criteria JobFilter) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{})

	if criteria.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if criteria.Search != "" {
		search := "%" + strings.ToLower(criteria.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", search, search)
	}
	if criteria.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(criteria.Location)+"%")
	}
	if criteria.CompanyID != 0 {
		query = query.Where("company_id = ?", criteria.CompanyID)
	}
	if criteria.EmploymentType != "" {
		query = query.Where("employment_type = ?", criteria.EmploymentType)
	}
	if criteria.ExperienceLevel != "" {
		query = query.Where("experience_level = ?", criteria.ExperienceLevel)
	}
	if criteria.RemoteOnly {
		query = query.Where("remote_work = ?", true)
	}
	if criteria.SalaryMin != nil {
		query = query.Where("salary_max >= ? OR salary_max IS NULL", *criteria.SalaryMin)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var jobs []models.Job
	err := query.Preload("Company").
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *JobRepositoryImpl) FindByPoster(userID uint, limit, offset int) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{}).Where("posted_by = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.Preload("Company").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	result := r.db.Save(job)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(id uint) error {
	result := r.db.Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) SetActive(id uint, active bool) error {
	result := r.db.Model(&models.Job{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// DeactivateExpired закрывает вакансии с прошедшим дедлайном
func (r *JobRepositoryImpl) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.Job{}).
		Where("is_active = ? AND deadline IS NOT NULL AND deadline < ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
