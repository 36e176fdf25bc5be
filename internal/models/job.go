package models

import (
	"time"

	"github.com/lib/pq"
)

type Company struct {
	BaseModel
	Name        string `gorm:"not null;size:255" json:"name"`
	Description string `json:"description,omitempty"`
	Website     string `gorm:"size:255" json:"website,omitempty"`
	Industry    string `gorm:"size:100" json:"industry,omitempty"`
	Size        string `gorm:"size:50" json:"size,omitempty"`
	Location    string `gorm:"size:255" json:"location,omitempty"`
	CreatedBy   uint   `gorm:"not null;index" json:"created_by"`

	Jobs []Job `gorm:"foreignKey:CompanyID" json:"-"`
}

type Job struct {
	BaseModel
	CompanyID       uint            `gorm:"not null;index" json:"company_id"`
	PostedBy        uint            `gorm:"not null;index" json:"posted_by"`
	Title           string          `gorm:"not null;size:255" json:"title"`
	Description     string          `gorm:"not null" json:"description"`
	Requirements    string          `json:"requirements,omitempty"`
	Skills          pq.StringArray  `gorm:"type:text[]" json:"skills,omitempty"`
	Location        string          `gorm:"size:255" json:"location,omitempty"`
	SalaryMin       *int            `json:"salary_min,omitempty"`
	SalaryMax       *int            `json:"salary_max,omitempty"`
	EmploymentType  EmploymentType  `gorm:"type:varchar(20);not null" json:"employment_type"`
	ExperienceLevel ExperienceLevel `gorm:"type:varchar(20);not null" json:"experience_level"`
	RemoteWork      bool            `gorm:"default:false" json:"remote_work"`
	Deadline        *time.Time      `json:"application_deadline,omitempty"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`

	Company      *Company         `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Applications []JobApplication `gorm:"foreignKey:JobID" json:"-"`
}

type JobApplication struct {
	BaseModel
	JobID       uint              `gorm:"not null;index" json:"job_id"`
	ApplicantID uint              `gorm:"not null;index" json:"applicant_id"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	ResumeURL   string            `gorm:"size:500" json:"resume_url,omitempty"`
	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReviewedAt  *time.Time        `json:"reviewed_at,omitempty"`
	Notes       string            `json:"notes,omitempty"`

	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}
