package apperrors

import (
	"github.com/gin-gonic/gin"

	"jobboard_backend/internal/logger"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HandleError - отправляет ошибку клиенту в стандартном формате.
// Не-AppError оборачивается в InternalError, детали наружу не уходят.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "Server error", appErr.Unwrap(), "code", appErr.Code)
		// В продакшене скрываем внутренние детали
		appErr = New(appErr.Code, appErr.Message, appErr.HTTPCode)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}
