package handlers

import (
	"io"
	"net/http"
	"strconv"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewFileHandler(base *BaseHandler, uploadService services.UploadService) *FileHandler {
	return &FileHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

// RegisterRoutes регистрирует маршруты работы с файлами
func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	files.Use(middleware.AuthMiddleware(), middleware.VerifiedMiddleware())
	{
		files.POST("", h.Upload)
		files.GET("", h.List)
		files.GET("/:id", h.Get)
		files.GET("/:id/download", h.Download)
		files.DELETE("/:id", h.Delete)
	}
}

func (h *FileHandler) Upload(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File is required (multipart field \"file\")"))
		return
	}

	isPublic, _ := strconv.ParseBool(c.DefaultPostForm("is_public", "false"))

	db := h.GetDB(c)

	resp, err := h.uploadService.Upload(c.Request.Context(), db, userID, file, isPublic)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *FileHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	var req dto.UploadListRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.uploadService.List(c.Request.Context(), db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FileHandler) Get(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	db := h.GetDB(c)

	resp, err := h.uploadService.Get(c.Request.Context(), db, userID, h.IsAdmin(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FileHandler) Download(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	db := h.GetDB(c)

	reader, upload, err := h.uploadService.Download(c.Request.Context(), db, userID, h.IsAdmin(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+upload.OriginalName+`"`)
	c.Header("Content-Type", upload.MimeType)
	c.Header("Content-Length", strconv.FormatInt(upload.Size, 10))

	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to stream file", err, "upload_id", id)
	}
}

func (h *FileHandler) Delete(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.uploadService.Delete(c.Request.Context(), db, userID, h.IsAdmin(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
