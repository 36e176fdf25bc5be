package handlers

import (
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/validator"
)

// AppHandlers содержит все HTTP хендлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	VerificationHandler *VerificationHandler
	CompanyHandler      *CompanyHandler
	JobHandler          *JobHandler
	FileHandler         *FileHandler
}

// NewAppHandlers собирает хендлеры поверх сервисного слоя
func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, sc.AuthService, sc.UserService),
		UserHandler:         NewUserHandler(base, sc.UserService),
		VerificationHandler: NewVerificationHandler(base, sc.VerificationService, sc.UserService),
		CompanyHandler:      NewCompanyHandler(base, sc.CompanyService),
		JobHandler:          NewJobHandler(base, sc.JobService),
		FileHandler:         NewFileHandler(base, sc.UploadService),
	}
}
