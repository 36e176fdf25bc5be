package dto

import (
	"time"

	"jobboard_backend/internal/models"
)

// CreateJobRequest - запрос создания вакансии
type CreateJobRequest struct {
	CompanyID       uint                   `json:"company_id" validate:"required"`
	Title           string                 `json:"title" validate:"required,min=3,max=200"`
	Description     string                 `json:"description" validate:"required,max=10000"`
	Requirements    string                 `json:"requirements" validate:"omitempty,max=10000"`
	Skills          []string               `json:"skills" validate:"omitempty,max=30,dive,min=1,max=50"`
	Location        string                 `json:"location" validate:"omitempty,max=200"`
	SalaryMin       *int                   `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax       *int                   `json:"salary_max" validate:"omitempty,min=0"`
	EmploymentType  models.EmploymentType  `json:"employment_type" validate:"required,is-employment-type"`
	ExperienceLevel models.ExperienceLevel `json:"experience_level" validate:"required,is-experience-level"`
	RemoteWork      bool                   `json:"remote_work"`
	Deadline        *time.Time             `json:"deadline"`
}

// UpdateJobRequest - запрос обновления вакансии
type UpdateJobRequest struct {
	Title           *string                 `json:"title" validate:"omitempty,min=3,max=200"`
	Description     *string                 `json:"description" validate:"omitempty,max=10000"`
	Requirements    *string                 `json:"requirements" validate:"omitempty,max=10000"`
	Skills          []string                `json:"skills" validate:"omitempty,max=30,dive,min=1,max=50"`
	Location        *string                 `json:"location" validate:"omitempty,max=200"`
	SalaryMin       *int                    `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax       *int                    `json:"salary_max" validate:"omitempty,min=0"`
	EmploymentType  *models.EmploymentType  `json:"employment_type" validate:"omitempty,is-employment-type"`
	ExperienceLevel *models.ExperienceLevel `json:"experience_level" validate:"omitempty,is-experience-level"`
	RemoteWork      *bool                   `json:"remote_work"`
	Deadline        *time.Time              `json:"deadline"`
	IsActive        *bool                   `json:"is_active"`
}

// JobSearchRequest - параметры поиска вакансий
type JobSearchRequest struct {
	Search          string `form:"search" validate:"omitempty,max=200"`
	Location        string `form:"location" validate:"omitempty,max=200"`
	CompanyID       uint   `form:"company_id"`
	EmploymentType  string `form:"employment_type" validate:"omitempty,is-employment-type"`
	ExperienceLevel string `form:"experience_level" validate:"omitempty,is-experience-level"`
	RemoteOnly      bool   `form:"remote_only"`
	SalaryMin       *int   `form:"salary_min" validate:"omitempty,min=0"`
	Page            int    `form:"page" validate:"omitempty,min=1"`
	PageSize        int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// JobResponse - представление вакансии
type JobResponse struct {
	ID              uint                   `json:"id"`
	CompanyID       uint                   `json:"company_id"`
	CompanyName     string                 `json:"company_name,omitempty"`
	PostedBy        uint                   `json:"posted_by"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Requirements    string                 `json:"requirements,omitempty"`
	Skills          []string               `json:"skills"`
	Location        string                 `json:"location,omitempty"`
	SalaryMin       *int                   `json:"salary_min,omitempty"`
	SalaryMax       *int                   `json:"salary_max,omitempty"`
	EmploymentType  models.EmploymentType  `json:"employment_type"`
	ExperienceLevel models.ExperienceLevel `json:"experience_level"`
	RemoteWork      bool                   `json:"remote_work"`
	Deadline        *time.Time             `json:"deadline,omitempty"`
	IsActive        bool                   `json:"is_active"`
	CreatedAt       time.Time              `json:"created_at"`
}

func NewJobResponse(job *models.Job) *JobResponse {
	resp := &JobResponse{
		ID:              job.ID,
		CompanyID:       job.CompanyID,
		PostedBy:        job.PostedBy,
		Title:           job.Title,
		Description:     job.Description,
		Requirements:    job.Requirements,
		Skills:          job.Skills,
		Location:        job.Location,
		SalaryMin:       job.SalaryMin,
		SalaryMax:       job.SalaryMax,
		EmploymentType:  job.EmploymentType,
		ExperienceLevel: job.ExperienceLevel,
		RemoteWork:      job.RemoteWork,
		Deadline:        job.Deadline,
		IsActive:        job.IsActive,
		CreatedAt:       job.CreatedAt,
	}
	if job.Company != nil {
		resp.CompanyName = job.Company.Name
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	return resp
}

// JobListResponse - страница вакансий
type JobListResponse struct {
	Jobs     []JobResponse `json:"jobs"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// ApplyJobRequest - отклик на вакансию
type ApplyJobRequest struct {
	CoverLetter string `json:"cover_letter" validate:"omitempty,max=5000"`
	ResumeURL   string `json:"resume_url" validate:"omitempty,url"`
}

// UpdateApplicationRequest - смена статуса отклика работодателем
type UpdateApplicationRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
	Notes  string                   `json:"notes" validate:"omitempty,max=2000"`
}

// ApplicationResponse - представление отклика
type ApplicationResponse struct {
	ID          uint                     `json:"id"`
	JobID       uint                     `json:"job_id"`
	JobTitle    string                   `json:"job_title,omitempty"`
	ApplicantID uint                     `json:"applicant_id"`
	CoverLetter string                   `json:"cover_letter,omitempty"`
	ResumeURL   string                   `json:"resume_url,omitempty"`
	Status      models.ApplicationStatus `json:"status"`
	ReviewedAt  *time.Time               `json:"reviewed_at,omitempty"`
	Notes       string                   `json:"notes,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

func NewApplicationResponse(application *models.JobApplication) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:          application.ID,
		JobID:       application.JobID,
		ApplicantID: application.ApplicantID,
		CoverLetter: application.CoverLetter,
		ResumeURL:   application.ResumeURL,
		Status:      application.Status,
		ReviewedAt:  application.ReviewedAt,
		Notes:       application.Notes,
		CreatedAt:   application.CreatedAt,
	}
	if application.Job != nil {
		resp.JobTitle = application.Job.Title
	}
	return resp
}

// ApplicationListResponse - страница откликов
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
}
