package services

import (
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CompanyService interface {
	Create(db *gorm.DB, userID uint, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	GetByID(db *gorm.DB, id uint) (*dto.CompanyResponse, error)
	List(db *gorm.DB, page, pageSize int) (*dto.CompanyListResponse, error)
	ListMine(db *gorm.DB, userID uint) ([]dto.CompanyResponse, error)
	Update(db *gorm.DB, userID uint, isAdmin bool, companyID uint, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	Delete(db *gorm.DB, userID uint, isAdmin bool, companyID uint) error
}

type CompanyServiceImpl struct {
	companyRepo func(db *gorm.DB) repositories.CompanyRepository
}

func NewCompanyService() CompanyService {
	return &CompanyServiceImpl{
		companyRepo: repositories.NewCompanyRepository,
	}
}

func (s *CompanyServiceImpl) Create(db *gorm.DB, userID uint, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	company := &models.Company{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Industry:    req.Industry,
		Size:        req.Size,
		Location:    req.Location,
		CreatedBy:   userID,
	}

	if err := s.companyRepo(db).Create(company); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("company created", "company_id", company.ID, "user_id", userID)
	return dto.NewCompanyResponse(company), nil
}

func (s *CompanyServiceImpl) GetByID(db *gorm.DB, id uint) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo(db).FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCompanyResponse(company), nil
}

func (s *CompanyServiceImpl) List(db *gorm.DB, page, pageSize int) (*dto.CompanyListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	companies, total, err := s.companyRepo(db).FindAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CompanyListResponse{
		Companies: make([]dto.CompanyResponse, 0, len(companies)),
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}
	for i := range companies {
		resp.Companies = append(resp.Companies, *dto.NewCompanyResponse(&companies[i]))
	}
	return resp, nil
}

func (s *CompanyServiceImpl) ListMine(db *gorm.DB, userID uint) ([]dto.CompanyResponse, error) {
	companies, err := s.companyRepo(db).FindByCreator(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, *dto.NewCompanyResponse(&companies[i]))
	}
	return out, nil
}

func (s *CompanyServiceImpl) Update(db *gorm.DB, userID uint, isAdmin bool, companyID uint, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	repo := s.companyRepo(db)

	company, err := repo.FindByID(companyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// компанию может менять только ее создатель или администратор
	if company.CreatedBy != userID && !isAdmin {
		return nil, apperrors.ErrForbidden
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.Size != nil {
		company.Size = *req.Size
	}
	if req.Location != nil {
		company.Location = *req.Location
	}

	if err := repo.Update(company); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCompanyResponse(company), nil
}

func (s *CompanyServiceImpl) Delete(db *gorm.DB, userID uint, isAdmin bool, companyID uint) error {
	repo := s.companyRepo(db)

	company, err := repo.FindByID(companyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return apperrors.ErrCompanyNotFound
		}
		return apperrors.InternalError(err)
	}

	if company.CreatedBy != userID && !isAdmin {
		return apperrors.ErrForbidden
	}

	if err := repo.Delete(companyID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("company deleted", "company_id", companyID, "user_id", userID)
	return nil
}
