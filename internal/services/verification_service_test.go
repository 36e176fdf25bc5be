package services

import (
	"errors"
	"testing"
	"time"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/models"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingProvider имитирует недоступный SMTP
type failingProvider struct{}

func (p *failingProvider) Name() string              { return "failing" }
func (p *failingProvider) Validate() error           { return nil }
func (p *failingProvider) Send(_ *email.Email) error { return errors.New("smtp down") }
func (p *failingProvider) SendOTP(_, _ string, _ int) error {
	return errors.New("smtp down")
}

var _ email.Provider = (*failingProvider)(nil)

type verificationFixture struct {
	svc      *VerificationServiceImpl
	users    *fakeUserRepo
	otps     *fakeOTPRepo
	provider *email.MockProvider
	now      time.Time
}

func newVerificationFixture(t *testing.T) *verificationFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Verification.OTPExpiryMinutes = 10
	cfg.Verification.ExposeCodes = true

	users := newFakeUserRepo()
	otps := newFakeOTPRepo(users)
	provider := email.NewMockProvider()

	fx := &verificationFixture{
		users:    users,
		otps:     otps,
		provider: provider,
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	fx.svc = &VerificationServiceImpl{
		cfg:           cfg,
		emailProvider: provider,
		otpRepo:       otps.factory(),
		userRepo:      users.factory(),
		now:           func() time.Time { return fx.now },
	}
	return fx
}

func (fx *verificationFixture) addUser(emailAddr string, verified bool) *models.User {
	return fx.users.add(&models.User{
		Name:            "Test User",
		Email:           emailAddr,
		PasswordHash:    "x",
		Role:            models.UserRoleUser,
		IsActive:        true,
		IsEmailVerified: verified,
	})
}

func TestSendOTP(t *testing.T) {
	t.Run("issues six digit code", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("user@example.com", false)

		resp, err := fx.svc.SendOTP(nil, "user@example.com")
		require.NoError(t, err)

		assert.True(t, resp.Success)
		assert.Equal(t, 10, resp.ExpiresInMinutes)
		require.NotNil(t, resp.OTPCode)
		assert.Len(t, *resp.OTPCode, 6)

		rec := fx.otps.latest("user@example.com")
		require.NotNil(t, rec)
		assert.Equal(t, *resp.OTPCode, rec.Code)
		assert.Equal(t, fx.now.Add(10*time.Minute), rec.ExpiresAt)
		assert.Len(t, fx.provider.Sent(), 1)
	})

	t.Run("normalizes email", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("user@example.com", false)

		_, err := fx.svc.SendOTP(nil, "  User@Example.COM ")
		require.NoError(t, err)

		assert.NotNil(t, fx.otps.latest("user@example.com"))
	})

	t.Run("allows unknown email before registration", func(t *testing.T) {
		fx := newVerificationFixture(t)

		resp, err := fx.svc.SendOTP(nil, "new@example.com")
		require.NoError(t, err)
		assert.True(t, resp.Success)
	})

	t.Run("rejects unknown email when required", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.svc.cfg.Verification.RequireKnownEmail = true

		_, err := fx.svc.SendOTP(nil, "ghost@example.com")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("rejects already verified user", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("done@example.com", true)

		_, err := fx.svc.SendOTP(nil, "done@example.com")
		assert.ErrorIs(t, err, apperrors.ErrAlreadyVerified)
	})

	t.Run("rate limited while previous code is active", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("user@example.com", false)

		_, err := fx.svc.SendOTP(nil, "user@example.com")
		require.NoError(t, err)

		_, err = fx.svc.SendOTP(nil, "user@example.com")
		assert.ErrorIs(t, err, apperrors.ErrOTPRateLimited)

		// в ответе указано, сколько ждать до повторной выдачи
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		details, ok := appErr.Details.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 600, details["retry_after_seconds"])

		// остаток убывает вместе со сроком действия кода
		fx.now = fx.now.Add(4 * time.Minute)
		_, err = fx.svc.SendOTP(nil, "user@example.com")
		appErr, ok = apperrors.AsAppError(err)
		require.True(t, ok)
		details, ok = appErr.Details.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 360, details["retry_after_seconds"])

		// после истечения срока код можно запросить снова
		fx.now = fx.now.Add(7 * time.Minute)
		_, err = fx.svc.SendOTP(nil, "user@example.com")
		assert.NoError(t, err)
	})

	t.Run("delivery failure does not abort issuance", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.svc.emailProvider = &failingProvider{}
		fx.addUser("user@example.com", false)

		resp, err := fx.svc.SendOTP(nil, "user@example.com")
		require.NoError(t, err)
		assert.True(t, resp.Success)

		// письмо не ушло, но код записан и вне production виден в ответе
		require.NotNil(t, resp.OTPCode)
		rec := fx.otps.latest("user@example.com")
		require.NotNil(t, rec)
		assert.Equal(t, *resp.OTPCode, rec.Code)

		// выданный код работает несмотря на сбой доставки
		verified, err := fx.svc.VerifyOTP(nil, "user@example.com", *resp.OTPCode)
		require.NoError(t, err)
		assert.True(t, verified.Verified)
	})

	t.Run("hides code in production", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.svc.cfg.Server.Env = "production"
		fx.addUser("user@example.com", false)

		resp, err := fx.svc.SendOTP(nil, "user@example.com")
		require.NoError(t, err)
		assert.Nil(t, resp.OTPCode)
	})
}

func TestResendOTP(t *testing.T) {
	t.Run("supersedes previous code", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("user@example.com", false)

		first, err := fx.svc.SendOTP(nil, "user@example.com")
		require.NoError(t, err)

		second, err := fx.svc.ResendOTP(nil, "user@example.com")
		require.NoError(t, err)

		// старый код больше не принимается
		_, err = fx.svc.VerifyOTP(nil, "user@example.com", *first.OTPCode)
		if *first.OTPCode != *second.OTPCode {
			assert.ErrorIs(t, err, apperrors.ErrOTPMismatch)
		}

		// новый работает
		resp, err := fx.svc.VerifyOTP(nil, "user@example.com", *second.OTPCode)
		require.NoError(t, err)
		assert.True(t, resp.Verified)
	})

	t.Run("not blocked by active code", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("user@example.com", false)

		_, err := fx.svc.SendOTP(nil, "user@example.com")
		require.NoError(t, err)

		_, err = fx.svc.ResendOTP(nil, "user@example.com")
		assert.NoError(t, err)
	})

	t.Run("rejects already verified user", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("done@example.com", true)

		_, err := fx.svc.ResendOTP(nil, "done@example.com")
		assert.ErrorIs(t, err, apperrors.ErrAlreadyVerified)
	})

	t.Run("at most one active record per email", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("user@example.com", false)

		_, _ = fx.svc.SendOTP(nil, "user@example.com")
		_, _ = fx.svc.ResendOTP(nil, "user@example.com")
		_, _ = fx.svc.ResendOTP(nil, "user@example.com")

		active := 0
		for _, r := range fx.otps.records {
			if r.Active(fx.now) {
				active++
			}
		}
		assert.Equal(t, 1, active)

		total, _ := fx.otps.CountForEmail("user@example.com")
		assert.Equal(t, int64(3), total)
	})
}

func TestVerifyOTP(t *testing.T) {
	issue := func(t *testing.T, fx *verificationFixture, emailAddr string) string {
		t.Helper()
		resp, err := fx.svc.SendOTP(nil, emailAddr)
		require.NoError(t, err)
		require.NotNil(t, resp.OTPCode)
		return *resp.OTPCode
	}

	t.Run("marks user verified", func(t *testing.T) {
		fx := newVerificationFixture(t)
		user := fx.addUser("user@example.com", false)
		code := issue(t, fx, "user@example.com")

		resp, err := fx.svc.VerifyOTP(nil, "user@example.com", code)
		require.NoError(t, err)
		assert.True(t, resp.Verified)

		stored, err := fx.users.FindByID(user.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsEmailVerified)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("user@example.com", false)
		code := issue(t, fx, "user@example.com")

		_, err := fx.svc.VerifyOTP(nil, "user@example.com", "  "+code+"\n")
		assert.NoError(t, err)
	})

	t.Run("works before registration", func(t *testing.T) {
		fx := newVerificationFixture(t)
		code := issue(t, fx, "early@example.com")

		resp, err := fx.svc.VerifyOTP(nil, "early@example.com", code)
		require.NoError(t, err)
		assert.True(t, resp.Verified)
	})

	t.Run("no code issued", func(t *testing.T) {
		fx := newVerificationFixture(t)

		_, err := fx.svc.VerifyOTP(nil, "nobody@example.com", "123456")
		assert.ErrorIs(t, err, apperrors.ErrOTPNotFound)
	})

	t.Run("wrong code", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("user@example.com", false)
		code := issue(t, fx, "user@example.com")

		wrong := "000000"
		if wrong == code {
			wrong = "000001"
		}
		_, err := fx.svc.VerifyOTP(nil, "user@example.com", wrong)
		assert.ErrorIs(t, err, apperrors.ErrOTPMismatch)
	})

	t.Run("expired exactly at the boundary", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("user@example.com", false)
		code := issue(t, fx, "user@example.com")

		// за мгновение до границы код еще действует
		fx.now = fx.now.Add(10*time.Minute - time.Nanosecond)
		rec := fx.otps.latest("user@example.com")
		assert.True(t, rec.Active(fx.now))

		// ровно на границе уже нет
		fx.now = fx.now.Add(time.Nanosecond)
		_, err := fx.svc.VerifyOTP(nil, "user@example.com", code)
		assert.ErrorIs(t, err, apperrors.ErrOTPExpired)
	})

	t.Run("single use", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("user@example.com", false)
		code := issue(t, fx, "user@example.com")

		_, err := fx.svc.VerifyOTP(nil, "user@example.com", code)
		require.NoError(t, err)

		_, err = fx.svc.VerifyOTP(nil, "user@example.com", code)
		assert.ErrorIs(t, err, apperrors.ErrOTPAlreadyUsed)
	})

	t.Run("concurrent consume loses", func(t *testing.T) {
		fx := newVerificationFixture(t)
		fx.addUser("user@example.com", false)
		code := issue(t, fx, "user@example.com")

		// конкурент погасил код между чтением и Consume
		rec := fx.otps.latest("user@example.com")
		rec.IsUsed = true

		_, err := fx.svc.VerifyOTP(nil, "user@example.com", code)
		assert.ErrorIs(t, err, apperrors.ErrOTPAlreadyUsed)
	})

	t.Run("failure reasons are indistinguishable to the client", func(t *testing.T) {
		// наружу уходит один и тот же код и текст, причина видна только в логах
		reasons := []*apperrors.AppError{
			apperrors.ErrOTPNotFound,
			apperrors.ErrOTPExpired,
			apperrors.ErrOTPMismatch,
			apperrors.ErrOTPAlreadyUsed,
		}
		for _, e := range reasons {
			assert.Equal(t, apperrors.CodeVerificationFailed, e.Code)
			assert.Equal(t, apperrors.ErrOTPNotFound.Message, e.Message)
			assert.Equal(t, apperrors.ErrOTPNotFound.HTTPCode, e.HTTPCode)
		}
	})
}

func TestVerificationStatus(t *testing.T) {
	fx := newVerificationFixture(t)
	fx.addUser("user@example.com", false)

	status, err := fx.svc.Status(nil, "user@example.com")
	require.NoError(t, err)
	assert.False(t, status.IsVerified)

	code, err := fx.svc.SendOTP(nil, "user@example.com")
	require.NoError(t, err)
	_, err = fx.svc.VerifyOTP(nil, "user@example.com", *code.OTPCode)
	require.NoError(t, err)

	status, err = fx.svc.Status(nil, "user@example.com")
	require.NoError(t, err)
	assert.True(t, status.IsVerified)

	_, err = fx.svc.Status(nil, "ghost@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestGenerateOTPCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := generateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, ch := range code {
			assert.True(t, ch >= '0' && ch <= '9')
		}
		seen[code] = true
	}
	// сто кодов подряд не могут совпасть все до единого
	assert.Greater(t, len(seen), 1)
}
