package services

import (
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	VerificationService VerificationService
	CompanyService      CompanyService
	JobService          JobService
	UploadService       UploadService
	EmailProvider       email.Provider
}

// NewServiceContainer собирает сервисы с их зависимостями
func NewServiceContainer(cfg *config.Config, emailProvider email.Provider, store storage.Storage) *ServiceContainer {
	verificationService := NewVerificationService(cfg, emailProvider)

	return &ServiceContainer{
		AuthService:         NewAuthService(cfg, verificationService),
		UserService:         NewUserService(),
		VerificationService: verificationService,
		CompanyService:      NewCompanyService(),
		JobService:          NewJobService(),
		UploadService:       NewUploadService(cfg, store),
		EmailProvider:       emailProvider,
	}
}
