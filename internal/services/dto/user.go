package dto

import (
	"time"

	"jobboard_backend/internal/models"
)

// UserResponse - публичное представление пользователя
type UserResponse struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Role            models.UserRole `json:"role"`
	IsActive        bool            `json:"is_active"`
	IsEmailVerified bool            `json:"is_email_verified"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewUserResponse строит ответ из модели
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
		IsActive:        user.IsActive,
		IsEmailVerified: user.IsEmailVerified,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

// UpdateUserRequest - запрос обновления профиля
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// AdminCreateUserRequest - создание пользователя администратором.
// В отличие от регистрации допускает любую роль и сразу
// подтвержденную почту.
type AdminCreateUserRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=100"`
	Email           string          `json:"email" validate:"required,email"`
	Password        string          `json:"password" validate:"required,min=8"`
	Role            models.UserRole `json:"role" validate:"omitempty,is-user-role"`
	IsEmailVerified bool            `json:"is_email_verified"`
}

// AdminUpdateUserRequest - запрос обновления пользователя администратором
type AdminUpdateUserRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=2,max=100"`
	Email    *string          `json:"email" validate:"omitempty,email"`
	Role     *models.UserRole `json:"role" validate:"omitempty,is-user-role"`
	IsActive *bool            `json:"is_active"`
}

// UserListRequest - параметры списка пользователей
type UserListRequest struct {
	Role     string `form:"role" validate:"omitempty,is-user-role"`
	Verified *bool  `form:"verified"`
	Active   *bool  `form:"active"`
	Search   string `form:"search" validate:"omitempty,max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// UserListResponse - страница пользователей
type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}
