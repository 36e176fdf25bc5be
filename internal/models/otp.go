package models

import "time"

// EmailOTP - одноразовый код подтверждения email.
// Активная запись: is_used = false, is_superseded = false, expires_at в будущем.
// Инвариант хранилища: не более одной активной записи на email -
// issue/resend помечают все предыдущие неиспользованные записи superseded.
type EmailOTP struct {
	BaseModel
	Email        string    `gorm:"not null;index"`
	Code         string    `gorm:"type:varchar(6);not null"`
	ExpiresAt    time.Time `gorm:"not null"`
	IsUsed       bool      `gorm:"default:false"`
	IsSuperseded bool      `gorm:"default:false"`
}

// Active сообщает, является ли запись действующей на момент now.
// Граница включительная: код, предъявленный ровно в expires_at, просрочен.
func (o *EmailOTP) Active(now time.Time) bool {
	return !o.IsUsed && !o.IsSuperseded && now.Before(o.ExpiresAt)
}
