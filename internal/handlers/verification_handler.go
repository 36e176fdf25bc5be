package handlers

import (
	"net/http"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	*BaseHandler
	verificationService services.VerificationService
	userService         services.UserService
}

func NewVerificationHandler(base *BaseHandler, verificationService services.VerificationService, userService services.UserService) *VerificationHandler {
	return &VerificationHandler{
		BaseHandler:         base,
		verificationService: verificationService,
		userService:         userService,
	}
}

// RegisterRoutes регистрирует маршруты подтверждения почты.
// Публичные маршруты принимают email в теле: код можно запросить
// и подтвердить до первого входа.
func (h *VerificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/email-verification")
	{
		group.POST("/send-otp", h.SendOTP)
		group.POST("/resend-otp", h.ResendOTP)
		group.POST("/verify-otp", h.VerifyOTP)
	}

	// варианты для вошедшего пользователя, почта берется из его аккаунта
	me := rg.Group("/email-verification/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.POST("/send-otp", h.SendOTPForMe)
		me.POST("/verify-otp", h.VerifyOTPForMe)
		me.GET("/status", h.StatusForMe)
	}
}

func (h *VerificationHandler) SendOTP(c *gin.Context) {
	var req dto.SendOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.verificationService.SendOTP(db, req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) ResendOTP(c *gin.Context) {
	var req dto.SendOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.verificationService.ResendOTP(db, req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.verificationService.VerifyOTP(db, req.Email, req.Code)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) SendOTPForMe(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetByID(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp, err := h.verificationService.ResendOTP(db, user.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) VerifyOTPForMe(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyMyOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetByID(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp, err := h.verificationService.VerifyOTP(db, user.Email, req.Code)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) StatusForMe(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetByID(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status, err := h.verificationService.Status(db, user.Email)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
