package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository interface {
	Create(company *models.Company) error
	FindByID(id uint) (*models.Company, error)
	FindAll(limit, offset int) ([]models.Company, int64, error)
	FindByCreator(userID uint) ([]models.Company, error)
	Update(company *models.Company) error
	Delete(id uint) error
}

type CompanyRepositoryImpl struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &CompanyRepositoryImpl{db: db}
}

func (r *CompanyRepositoryImpl) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *CompanyRepositoryImpl) FindByID(id uint) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindAll(limit, offset int) ([]models.Company, int64, error) {
	var total int64
	if err := r.db.Model(&models.Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []models.Company
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&companies).Error
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func (r *CompanyRepositoryImpl) FindByCreator(userID uint) ([]models.Company, error) {
	var companies []models.Company
	err := r.db.Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&companies).Error
	return companies, err
}

func (r *CompanyRepositoryImpl) Update(company *models.Company) error {
	result := r.db.Save(company)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepositoryImpl) Delete(id uint) error {
	result := r.db.Delete(&models.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
