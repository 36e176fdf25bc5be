package services

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const otpCodeLength = 6

type VerificationService interface {
	// SendOTP выдает новый код подтверждения. Пока действует ранее
	// выданный код, повторная выдача блокируется.
	SendOTP(db *gorm.DB, emailAddr string) (*dto.OTPResponse, error)
	// ResendOTP выдает новый код, гася ранее выданный
	ResendOTP(db *gorm.DB, emailAddr string) (*dto.OTPResponse, error)
	// VerifyOTP проверяет код и помечает почту подтвержденной
	VerifyOTP(db *gorm.DB, emailAddr, code string) (*dto.VerifyOTPResponse, error)
	// Status возвращает состояние подтверждения почты
	Status(db *gorm.DB, emailAddr string) (*dto.VerificationStatusResponse, error)
}

type VerificationServiceImpl struct {
	cfg           *config.Config
	emailProvider email.Provider

	otpRepo  func(db *gorm.DB) repositories.OTPRepository
	userRepo func(db *gorm.DB) repositories.UserRepository
	now      func() time.Time
}

func NewVerificationService(cfg *config.Config, emailProvider email.Provider) VerificationService {
	return &VerificationServiceImpl{
		cfg:           cfg,
		emailProvider: emailProvider,
		otpRepo:       repositories.NewOTPRepository,
		userRepo:      repositories.NewUserRepository,
		now:           time.Now,
	}
}

// generateOTPCode генерирует криптостойкий 6-значный код
func generateOTPCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpCodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}
	return fmt.Sprintf("%0*d", otpCodeLength, n), nil
}

func normalizeEmail(emailAddr string) string {
	return strings.ToLower(strings.TrimSpace(emailAddr))
}

func (s *VerificationServiceImpl) expiry() time.Duration {
	minutes := s.cfg.Verification.OTPExpiryMinutes
	if minutes <= 0 {
		minutes = 10
	}
	return time.Duration(minutes) * time.Minute
}

// checkTarget проверяет, можно ли выдавать код для этого адреса
func (s *VerificationServiceImpl) checkTarget(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo(db).FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			if s.cfg.Verification.RequireKnownEmail {
				return apperrors.ErrUserNotFound
			}
			// код можно запросить до регистрации
			return nil
		}
		return apperrors.InternalError(err)
	}
	if user.IsEmailVerified {
		return apperrors.ErrAlreadyVerified
	}
	return nil
}

func (s *VerificationServiceImpl) issue(db *gorm.DB, emailAddr string) (*dto.OTPResponse, error) {
	code, err := generateOTPCode()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := s.now()
	otp := &models.EmailOTP{
		Email:     emailAddr,
		Code:      code,
		ExpiresAt: now.Add(s.expiry()),
	}
	if err := s.otpRepo(db).IssueNew(otp); err != nil {
		return nil, apperrors.InternalError(err)
	}

	expiresInMinutes := int(s.expiry() / time.Minute)
	if err := s.emailProvider.SendOTP(emailAddr, code, expiresInMinutes); err != nil {
		// сбой доставки не отменяет выдачу: запись уже создана и вне
		// production код виден в ответе как запасной канал
		logger.Error("failed to send otp email", "email", emailAddr, "error", err)
	}

	resp := &dto.OTPResponse{
		Message:          "Verification code sent",
		Success:          true,
		ExpiresInMinutes: expiresInMinutes,
	}
	if s.cfg.Verification.ExposeCodes && !s.cfg.IsProduction() {
		resp.OTPCode = &code
	}
	return resp, nil
}

func (s *VerificationServiceImpl) SendOTP(db *gorm.DB, emailAddr string) (*dto.OTPResponse, error) {
	emailAddr = normalizeEmail(emailAddr)

	if err := s.checkTarget(db, emailAddr); err != nil {
		return nil, err
	}

	// пока действует прежний код, новый не выдаем; клиенту сообщается,
	// через сколько секунд можно повторить
	if active, err := s.otpRepo(db).FindActive(emailAddr, s.now()); err == nil {
		retryAfter := int(active.ExpiresAt.Sub(s.now()).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		return nil, apperrors.ErrOTPRateLimited.WithDetails(map[string]interface{}{
			"retry_after_seconds": retryAfter,
		})
	} else if !apperrors.Is(err, repositories.ErrOTPNotFound) {
		return nil, apperrors.InternalError(err)
	}

	return s.issue(db, emailAddr)
}

func (s *VerificationServiceImpl) ResendOTP(db *gorm.DB, emailAddr string) (*dto.OTPResponse, error) {
	emailAddr = normalizeEmail(emailAddr)

	if err := s.checkTarget(db, emailAddr); err != nil {
		return nil, err
	}

	// прежний код гасится при выдаче нового
	return s.issue(db, emailAddr)
}

func (s *VerificationServiceImpl) VerifyOTP(db *gorm.DB, emailAddr, code string) (*dto.VerifyOTPResponse, error) {
	emailAddr = normalizeEmail(emailAddr)
	code = strings.TrimSpace(code)

	otp, err := s.otpRepo(db).FindLatest(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOTPNotFound) {
			logger.Warn("otp verify: no code issued", "email", emailAddr)
			return nil, apperrors.ErrOTPNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if otp.IsUsed {
		logger.Warn("otp verify: code already used", "email", emailAddr)
		return nil, apperrors.ErrOTPAlreadyUsed
	}
	// просроченный ровно в expires_at код уже недействителен
	if !s.now().Before(otp.ExpiresAt) {
		logger.Warn("otp verify: code expired", "email", emailAddr, "expired_at", otp.ExpiresAt)
		return nil, apperrors.ErrOTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
		logger.Warn("otp verify: code mismatch", "email", emailAddr)
		return nil, apperrors.ErrOTPMismatch
	}

	if err := s.otpRepo(db).Consume(otp.ID, emailAddr); err != nil {
		if apperrors.Is(err, repositories.ErrOTPAlreadyUsed) {
			// конкурентный запрос успел погасить код первым
			logger.Warn("otp verify: concurrent consume", "email", emailAddr)
			return nil, apperrors.ErrOTPAlreadyUsed
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("email verified", "email", emailAddr)
	return &dto.VerifyOTPResponse{
		Message:  "Email verified successfully",
		Success:  true,
		Verified: true,
	}, nil
}

func (s *VerificationServiceImpl) Status(db *gorm.DB, emailAddr string) (*dto.VerificationStatusResponse, error) {
	emailAddr = normalizeEmail(emailAddr)

	user, err := s.userRepo(db).FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.VerificationStatusResponse{
		Email:      user.Email,
		IsVerified: user.IsEmailVerified,
	}, nil
}
