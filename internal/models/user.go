package models

import "time"

type User struct {
	BaseModel
	Name            string   `gorm:"not null" json:"name"`
	Email           string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string   `gorm:"not null" json:"-"`
	Role            UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsActive        bool     `gorm:"default:true" json:"is_active"`
	IsEmailVerified bool     `gorm:"default:false" json:"is_email_verified"`

	// Relations
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
	Companies     []Company      `gorm:"foreignKey:CreatedBy" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    uint      `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
