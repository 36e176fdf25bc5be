package handlers

import (
	"net/http"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
	}
}

// RegisterRoutes регистрирует маршруты компаний.
// Просмотр открыт всем, изменение - только работодателям с
// подтвержденной почтой.
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/companies")
	{
		public.GET("", h.List)
		public.GET("/:id", h.GetByID)
	}

	protected := rg.Group("/companies")
	protected.Use(
		middleware.AuthMiddleware(),
		middleware.VerifiedMiddleware(),
		middleware.RequireRoles(models.UserRoleCompany, models.UserRoleAdmin),
	)
	{
		protected.POST("", h.Create)
		protected.GET("/mine", h.ListMine)
		protected.PATCH("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
	}
}

func (h *CompanyHandler) Create(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	company, err := h.companyService.Create(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	db := h.GetDB(c)

	company, err := h.companyService.GetByID(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) List(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)

	db := h.GetDB(c)

	resp, err := h.companyService.List(db, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CompanyHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	companies, err := h.companyService.ListMine(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *CompanyHandler) Update(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	company, err := h.companyService.Update(db, userID, h.IsAdmin(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.companyService.Delete(db, userID, h.IsAdmin(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}
