package repositories

import (
	"errors"
	"strings"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPAlreadyUsed = errors.New("otp already used")
)

type OTPRepository interface {
	// IssueNew гасит все активные коды для email и создает новый
	IssueNew(otp *models.EmailOTP) error
	// FindActive возвращает действующий код для email, если он есть
	FindActive(email string, now time.Time) (*models.EmailOTP, error)
	// FindLatest возвращает последний не погашенный код независимо от срока
	FindLatest(email string) (*models.EmailOTP, error)
	// Consume помечает код использованным и выставляет флаг подтверждения
	// пользователю. Выполняется в одной транзакции; повторное погашение
	// того же кода возвращает ErrOTPAlreadyUsed.
	Consume(otpID uint, email string) error
	// DeleteStale удаляет использованные, погашенные и истекшие коды
	DeleteStale(before time.Time) (int64, error)
	CountForEmail(email string) (int64, error)
}

type OTPRepositoryImpl struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

func (r *OTPRepositoryImpl) IssueNew(otp *models.EmailOTP) error {
	otp.Email = strings.ToLower(otp.Email)

	return r.db.Transaction(func(tx *gorm.DB) error {
		// все прежние неиспользованные коды теряют силу
		err := tx.Model(&models.EmailOTP{}).
			Where("email = ? AND is_used = ? AND is_superseded = ?", otp.Email, false, false).
			Update("is_superseded", true).Error
		if err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
}

func (r *OTPRepositoryImpl) FindActive(email string, now time.Time) (*models.EmailOTP, error) {
	var otp models.EmailOTP
	err := r.db.
		Where("email = ? AND is_used = ? AND is_superseded = ? AND expires_at > ?",
			strings.ToLower(email), false, false, now).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (r *OTPRepositoryImpl) FindLatest(email string) (*models.EmailOTP, error) {
	var otp models.EmailOTP
	err := r.db.
		Where("email = ? AND is_superseded = ?", strings.ToLower(email), false).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (r *OTPRepositoryImpl) Consume(otpID uint, email string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// условный UPDATE защищает от повторного использования кода
		// при конкурентных запросах
		result := tx.Model(&models.EmailOTP{}).
			Where("id = ? AND is_used = ?", otpID, false).
			Update("is_used", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOTPAlreadyUsed
		}

		// пользователя с таким email может еще не быть, это не ошибка:
		// код можно подтвердить до регистрации
		return tx.Model(&models.User{}).
			Where("email = ?", strings.ToLower(email)).
			Update("is_email_verified", true).Error
	})
}

func (r *OTPRepositoryImpl) DeleteStale(before time.Time) (int64, error) {
	result := r.db.
		Where("is_used = ? OR is_superseded = ? OR expires_at <= ?", true, true, before).
		Delete(&models.EmailOTP{})
	return result.RowsAffected, result.Error
}

func (r *OTPRepositoryImpl) CountForEmail(email string) (int64, error) {
	var count int64
	err := r.db.Model(&models.EmailOTP{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count, err
}
