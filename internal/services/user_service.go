package services

import (
	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetByID(db *gorm.DB, id uint) (*dto.UserResponse, error)
	AdminCreate(db *gorm.DB, adminID uint, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error)
	UpdateProfile(db *gorm.DB, userID uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	List(db *gorm.DB, req *dto.UserListRequest) (*dto.UserListResponse, error)
	AdminUpdate(db *gorm.DB, adminID, userID uint, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error)
	Deactivate(db *gorm.DB, adminID, userID uint) error
	Delete(db *gorm.DB, adminID, userID uint) error
}

type UserServiceImpl struct {
	userRepo func(db *gorm.DB) repositories.UserRepository
}

func NewUserService() UserService {
	return &UserServiceImpl{
		userRepo: repositories.NewUserRepository,
	}
}

func (s *UserServiceImpl) GetByID(db *gorm.DB, id uint) (*dto.UserResponse, error) {
	user, err := s.userRepo(db).FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// AdminCreate - создание пользователя администратором, минуя
// самостоятельную регистрацию. Роль может быть любой валидной,
// почту можно сразу пометить подтвержденной.
func (s *UserServiceImpl) AdminCreate(db *gorm.DB, adminID uint, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleUser
	}
	if !role.Valid() {
		return nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    hash,
		Role:            role,
		IsActive:        true,
		IsEmailVerified: req.IsEmailVerified,
	}

	if err := s.userRepo(db).Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user created by admin", "admin_id", adminID, "user_id", user.ID, "role", user.Role)
	return dto.NewUserResponse(user), nil
}

// UpdateProfile - обновление собственного профиля.
// Смена email сбрасывает подтверждение почты.
func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	repo := s.userRepo(db)

	user, err := repo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		if existing, err := repo.FindByEmail(*req.Email); err == nil && existing.ID != user.ID {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		user.Email = *req.Email
		user.IsEmailVerified = false
	}

	if err := repo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) List(db *gorm.DB, req *dto.UserListRequest) (*dto.UserListResponse, error) {
	criteria := repositories.UserFilter{
		Role:       models.UserRole(req.Role),
		IsVerified: req.Verified,
		IsActive:   req.Active,
		Search:     req.Search,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	users, total, err := s.userRepo(db).FindWithFilter(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.UserListResponse{
		Users:    make([]dto.UserResponse, 0, len(users)),
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}
	if resp.Page < 1 {
		resp.Page = 1
	}
	if resp.PageSize < 1 {
		resp.PageSize = 20
	}
	for i := range users {
		resp.Users = append(resp.Users, *dto.NewUserResponse(&users[i]))
	}
	return resp, nil
}

// AdminUpdate - изменение пользователя администратором
func (s *UserServiceImpl) AdminUpdate(db *gorm.DB, adminID, userID uint, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	// администратор не может менять собственную роль или статус
	if adminID == userID && (req.Role != nil || req.IsActive != nil) {
		return nil, apperrors.ErrCannotModifySelf
	}

	repo := s.userRepo(db)
	user, err := repo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		if existing, err := repo.FindByEmail(*req.Email); err == nil && existing.ID != user.ID {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		user.Email = *req.Email
		user.IsEmailVerified = false
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, apperrors.ErrInvalidUserRole
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := repo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user updated by admin", "admin_id", adminID, "user_id", userID)
	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) Deactivate(db *gorm.DB, adminID, userID uint) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	repo := s.userRepo(db)
	if err := repo.SetActive(userID, false); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	// активные сессии деактивированного пользователя отзываются
	if err := repo.DeleteUserRefreshTokens(userID); err != nil {
		logger.Error("failed to revoke refresh tokens on deactivation", "user_id", userID, "error", err)
	}

	logger.Info("user deactivated", "admin_id", adminID, "user_id", userID)
	return nil
}

func (s *UserServiceImpl) Delete(db *gorm.DB, adminID, userID uint) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	if err := s.userRepo(db).Delete(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.Info("user deleted", "admin_id", adminID, "user_id", userID)
	return nil
}
