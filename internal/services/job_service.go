package services

import (
	"time"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type JobService interface {
	Create(db *gorm.DB, userID uint, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetByID(db *gorm.DB, id uint) (*dto.JobResponse, error)
	Search(db *gorm.DB, req *dto.JobSearchRequest) (*dto.JobListResponse, error)
	ListMine(db *gorm.DB, userID uint, page, pageSize int) (*dto.JobListResponse, error)
	Update(db *gorm.DB, userID uint, isAdmin bool, jobID uint, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	Delete(db *gorm.DB, userID uint, isAdmin bool, jobID uint) error

	Apply(db *gorm.DB, userID uint, jobID uint, req *dto.ApplyJobRequest) (*dto.ApplicationResponse, error)
	ListApplicationsForJob(db *gorm.DB, userID uint, isAdmin bool, jobID uint, page, pageSize int) (*dto.ApplicationListResponse, error)
	ListMyApplications(db *gorm.DB, userID uint, page, pageSize int) (*dto.ApplicationListResponse, error)
	UpdateApplication(db *gorm.DB, userID uint, isAdmin bool, applicationID uint, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error)
}

type JobServiceImpl struct {
	jobRepo         func(db *gorm.DB) repositories.JobRepository
	companyRepo     func(db *gorm.DB) repositories.CompanyRepository
	applicationRepo func(db *gorm.DB) repositories.ApplicationRepository

	now func() time.Time
}

func NewJobService() JobService {
	return &JobServiceImpl{
		jobRepo:         repositories.NewJobRepository,
		companyRepo:     repositories.NewCompanyRepository,
		applicationRepo: repositories.NewApplicationRepository,
		now:             time.Now,
	}
}

func (s *JobServiceImpl) Create(db *gorm.DB, userID uint, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	company, err := s.companyRepo(db).FindByID(req.CompanyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	// вакансии публикуются только от своей компании
	if company.CreatedBy != userID {
		return nil, apperrors.ErrForbidden
	}

	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return nil, apperrors.NewBadRequestError("salary_min cannot exceed salary_max")
	}

	job := &models.Job{
		CompanyID:       req.CompanyID,
		PostedBy:        userID,
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Skills:          req.Skills,
		Location:        req.Location,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		EmploymentType:  req.EmploymentType,
		ExperienceLevel: req.ExperienceLevel,
		RemoteWork:      req.RemoteWork,
		Deadline:        req.Deadline,
		IsActive:        true,
	}

	if err := s.jobRepo(db).Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	job.Company = company

	logger.Info("job created", "job_id", job.ID, "company_id", job.CompanyID, "user_id", userID)
	return dto.NewJobResponse(job), nil
}

func (s *JobServiceImpl) GetByID(db *gorm.DB, id uint) (*dto.JobResponse, error) {
	job, err := s.jobRepo(db).FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewJobResponse(job), nil
}

func (s *JobServiceImpl) Search(db *gorm.DB, req *dto.JobSearchRequest) (*dto.JobListResponse, error) {
	criteria := repositories.JobFilter{
		Search:          req.Search,
		Location:        req.Location,
		CompanyID:       req.CompanyID,
		EmploymentType:  models.EmploymentType(req.EmploymentType),
		ExperienceLevel: models.ExperienceLevel(req.ExperienceLevel),
		RemoteOnly:      req.RemoteOnly,
		SalaryMin:       req.SalaryMin,
		OnlyActive:      true,
		Page:            req.Page,
		PageSize:        req.PageSize,
	}

	jobs, total, err := s.jobRepo(db).FindWithFilter(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return newJobListResponse(jobs, total, req.Page, req.PageSize), nil
}

func (s *JobServiceImpl) ListMine(db *gorm.DB, userID uint, page, pageSize int) (*dto.JobListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	jobs, total, err := s.jobRepo(db).FindByPoster(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return newJobListResponse(jobs, total, page, pageSize), nil
}

func (s *JobServiceImpl) Update(db *gorm.DB, userID uint, isAdmin bool, jobID uint, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	repo := s.jobRepo(db)

	job, err := repo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.PostedBy != userID && !isAdmin {
		return nil, apperrors.ErrForbidden
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Skills != nil {
		job.Skills = req.Skills
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, apperrors.NewBadRequestError("salary_min cannot exceed salary_max")
	}
	if req.EmploymentType != nil {
		job.EmploymentType = *req.EmploymentType
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = *req.ExperienceLevel
	}
	if req.RemoteWork != nil {
		job.RemoteWork = *req.RemoteWork
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	if err := repo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewJobResponse(job), nil
}

func (s *JobServiceImpl) Delete(db *gorm.DB, userID uint, isAdmin bool, jobID uint) error {
	repo := s.jobRepo(db)

	job, err := repo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}
	if job.PostedBy != userID && !isAdmin {
		return apperrors.ErrForbidden
	}

	if err := repo.Delete(jobID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("job deleted", "job_id", jobID, "user_id", userID)
	return nil
}

// Apply - отклик соискателя на вакансию
func (s *JobServiceImpl) Apply(db *gorm.DB, userID uint, jobID uint, req *dto.ApplyJobRequest) (*dto.ApplicationResponse, error) {
	job, err := s.jobRepo(db).FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !job.IsActive {
		return nil, apperrors.ErrJobNotActive
	}
	if job.Deadline != nil && job.Deadline.Before(s.now()) {
		return nil, apperrors.ErrJobNotActive
	}
	// на свою вакансию откликнуться нельзя
	if job.PostedBy == userID {
		return nil, apperrors.ErrForbidden
	}

	application := &models.JobApplication{
		JobID:       jobID,
		ApplicantID: userID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		Status:      models.ApplicationPending,
	}

	if err := s.applicationRepo(db).Create(application); err != nil {
		if apperrors.Is(err, repositories.ErrAlreadyApplied) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}
	application.Job = job

	logger.Info("job application created", "application_id", application.ID, "job_id", jobID, "user_id", userID)
	return dto.NewApplicationResponse(application), nil
}

func (s *JobServiceImpl) ListApplicationsForJob(db *gorm.DB, userID uint, isAdmin bool, jobID uint, page, pageSize int) (*dto.ApplicationListResponse, error) {
	job, err := s.jobRepo(db).FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	// отклики видит только автор вакансии или администратор
	if job.PostedBy != userID && !isAdmin {
		return nil, apperrors.ErrForbidden
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	applications, total, err := s.applicationRepo(db).FindByJob(jobID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return newApplicationListResponse(applications, total, page, pageSize), nil
}

func (s *JobServiceImpl) ListMyApplications(db *gorm.DB, userID uint, page, pageSize int) (*dto.ApplicationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	applications, total, err := s.applicationRepo(db).FindByApplicant(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return newApplicationListResponse(applications, total, page, pageSize), nil
}

// UpdateApplication - смена статуса отклика автором вакансии
func (s *JobServiceImpl) UpdateApplication(db *gorm.DB, userID uint, isAdmin bool, applicationID uint, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error) {
	repo := s.applicationRepo(db)

	application, err := repo.FindByID(applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if application.Job == nil || (application.Job.PostedBy != userID && !isAdmin) {
		return nil, apperrors.ErrForbidden
	}

	application.Status = req.Status
	application.Notes = req.Notes
	now := s.now()
	application.ReviewedAt = &now

	if err := repo.Update(application); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("application reviewed", "application_id", applicationID, "status", req.Status, "user_id", userID)
	return dto.NewApplicationResponse(application), nil
}

func newJobListResponse(jobs []models.Job, total int64, page, pageSize int) *dto.JobListResponse {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	resp := &dto.JobListResponse{
		Jobs:     make([]dto.JobResponse, 0, len(jobs)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, *dto.NewJobResponse(&jobs[i]))
	}
	return resp
}

func newApplicationListResponse(applications []models.JobApplication, total int64, page, pageSize int) *dto.ApplicationListResponse {
	resp := &dto.ApplicationListResponse{
		Applications: make([]dto.ApplicationResponse, 0, len(applications)),
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
	}
	for i := range applications {
		resp.Applications = append(resp.Applications, *dto.NewApplicationResponse(&applications[i]))
	}
	return resp
}
