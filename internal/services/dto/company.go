package dto

import (
	"time"

	"jobboard_backend/internal/models"
)

// CreateCompanyRequest - запрос создания компании
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Website     string `json:"website" validate:"omitempty,url"`
	Industry    string `json:"industry" validate:"omitempty,max=100"`
	Size        string `json:"size" validate:"omitempty,max=50"`
	Location    string `json:"location" validate:"omitempty,max=200"`
}

// UpdateCompanyRequest - запрос обновления компании
type UpdateCompanyRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Industry    *string `json:"industry" validate:"omitempty,max=100"`
	Size        *string `json:"size" validate:"omitempty,max=50"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
}

// CompanyResponse - представление компании
type CompanyResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	Size        string    `json:"size,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCompanyResponse(company *models.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Website:     company.Website,
		Industry:    company.Industry,
		Size:        company.Size,
		Location:    company.Location,
		CreatedBy:   company.CreatedBy,
		CreatedAt:   company.CreatedAt,
	}
}

// CompanyListResponse - страница компаний
type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
}
