package handlers

import (
	"net/http"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

// RegisterRoutes регистрирует маршруты вакансий и откликов
func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/jobs")
	{
		public.GET("", h.Search)
		public.GET("/:id", h.GetByID)
	}

	// публикация и ведение вакансий - работодатели и администраторы
	employer := rg.Group("/jobs")
	employer.Use(
		middleware.AuthMiddleware(),
		middleware.VerifiedMiddleware(),
		middleware.RequireRoles(models.UserRoleCompany, models.UserRoleAdmin),
	)
	{
		employer.POST("", h.Create)
		employer.GET("/mine", h.ListMine)
		employer.PATCH("/:id", h.Update)
		employer.DELETE("/:id", h.Delete)
		employer.GET("/:id/applications", h.ListApplicationsForJob)
		employer.PATCH("/applications/:id", h.UpdateApplication)
	}

	// отклики - любой вошедший пользователь с подтвержденной почтой
	applicant := rg.Group("/jobs")
	applicant.Use(middleware.AuthMiddleware(), middleware.VerifiedMiddleware())
	{
		applicant.POST("/:id/apply", h.Apply)
		applicant.GET("/applications/mine", h.ListMyApplications)
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	job, err := h.jobService.Create(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	db := h.GetDB(c)

	job, err := h.jobService.GetByID(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Search(c *gin.Context) {
	var req dto.JobSearchRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.jobService.Search(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	page, pageSize := h.ParsePagination(c)

	db := h.GetDB(c)

	resp, err := h.jobService.ListMine(db, userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	job, err := h.jobService.Update(db, userID, h.IsAdmin(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.jobService.Delete(db, userID, h.IsAdmin(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

func (h *JobHandler) Apply(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ApplyJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	application, err := h.jobService.Apply(db, userID, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

func (h *JobHandler) ListApplicationsForJob(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	page, pageSize := h.ParsePagination(c)

	db := h.GetDB(c)

	resp, err := h.jobService.ListApplicationsForJob(db, userID, h.IsAdmin(c), id, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) ListMyApplications(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	page, pageSize := h.ParsePagination(c)

	db := h.GetDB(c)

	resp, err := h.jobService.ListMyApplications(db, userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) UpdateApplication(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	application, err := h.jobService.UpdateApplication(db, userID, h.IsAdmin(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}
