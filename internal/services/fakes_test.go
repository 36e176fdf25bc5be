package services

import (
	"strings"
	"time"

	"jobboard_backend/internal/email"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"

	"gorm.io/gorm"
)

// fakeUserRepo - userRepository в памяти для тестов сервисного слоя
type fakeUserRepo struct {
	users  map[uint]*models.User
	tokens map[string]*models.RefreshToken
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uint]*models.User),
		tokens: make(map[string]*models.RefreshToken),
	}
}

func (f *fakeUserRepo) factory() func(*gorm.DB) repositories.UserRepository {
	return func(*gorm.DB) repositories.UserRepository { return f }
}

func (f *fakeUserRepo) add(user *models.User) *models.User {
	f.nextID++
	user.ID = f.nextID
	user.Email = strings.ToLower(user.Email)
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) FindByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(emailAddr string) (*models.User, error) {
	emailAddr = strings.ToLower(emailAddr)
	for _, u := range f.users {
		if u.Email == emailAddr {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if _, err := f.FindByEmail(user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	copied.Email = strings.ToLower(copied.Email)
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) MarkEmailVerified(emailAddr string) error {
	emailAddr = strings.ToLower(emailAddr)
	for _, u := range f.users {
		if u.Email == emailAddr {
			u.IsEmailVerified = true
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeUserRepo) SetActive(userID uint, active bool) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeUserRepo) Delete(userID uint) error {
	if _, ok := f.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeUserRepo) FindWithFilter(criteria repositories.UserFilter) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range f.users {
		if criteria.Role != "" && u.Role != criteria.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) CountAll() (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CreateRefreshToken(token *models.RefreshToken) error {
	copied := *token
	f.tokens[token.Token] = &copied
	return nil
}

func (f *fakeUserRepo) FindRefreshToken(token string) (*models.RefreshToken, error) {
	t, ok := f.tokens[token]
	if !ok || t.ExpiresAt.Before(time.Now()) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeUserRepo) DeleteRefreshToken(token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeUserRepo) DeleteUserRefreshTokens(userID uint) error {
	for k, t := range f.tokens {
		if t.UserID == userID {
			delete(f.tokens, k)
		}
	}
	return nil
}

func (f *fakeUserRepo) CleanExpiredRefreshTokens() error {
	now := time.Now()
	for k, t := range f.tokens {
		if t.ExpiresAt.Before(now) {
			delete(f.tokens, k)
		}
	}
	return nil
}

// fakeOTPRepo - otpRepository в памяти. Повторяет контракт
// SQL-реализации, включая конкурентную защиту Consume.
type fakeOTPRepo struct {
	users   *fakeUserRepo
	records []*models.EmailOTP
	nextID  uint
}

func newFakeOTPRepo(users *fakeUserRepo) *fakeOTPRepo {
	return &fakeOTPRepo{users: users}
}

func (f *fakeOTPRepo) factory() func(*gorm.DB) repositories.OTPRepository {
	return func(*gorm.DB) repositories.OTPRepository { return f }
}

func (f *fakeOTPRepo) IssueNew(otp *models.EmailOTP) error {
	otp.Email = strings.ToLower(otp.Email)
	for _, r := range f.records {
		if r.Email == otp.Email && !r.IsUsed && !r.IsSuperseded {
			r.IsSuperseded = true
		}
	}
	f.nextID++
	otp.ID = f.nextID
	copied := *otp
	f.records = append(f.records, &copied)
	return nil
}

func (f *fakeOTPRepo) FindActive(emailAddr string, now time.Time) (*models.EmailOTP, error) {
	emailAddr = strings.ToLower(emailAddr)
	for i := len(f.records) - 1; i >= 0; i-- {
		r := f.records[i]
		if r.Email == emailAddr && r.Active(now) {
			copied := *r
			return &copied, nil
		}
	}
	return nil, repositories.ErrOTPNotFound
}

func (f *fakeOTPRepo) FindLatest(emailAddr string) (*models.EmailOTP, error) {
	emailAddr = strings.ToLower(emailAddr)
	for i := len(f.records) - 1; i >= 0; i-- {
		r := f.records[i]
		if r.Email == emailAddr && !r.IsSuperseded {
			copied := *r
			return &copied, nil
		}
	}
	return nil, repositories.ErrOTPNotFound
}

func (f *fakeOTPRepo) Consume(otpID uint, emailAddr string) error {
	for _, r := range f.records {
		if r.ID == otpID {
			if r.IsUsed {
				return repositories.ErrOTPAlreadyUsed
			}
			r.IsUsed = true
			// как и в SQL-реализации, отсутствие пользователя не ошибка
			_ = f.users.MarkEmailVerified(emailAddr)
			return nil
		}
	}
	return repositories.ErrOTPNotFound
}

func (f *fakeOTPRepo) DeleteStale(before time.Time) (int64, error) {
	var kept []*models.EmailOTP
	var deleted int64
	for _, r := range f.records {
		if r.IsUsed || r.IsSuperseded || !r.ExpiresAt.After(before) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

func (f *fakeOTPRepo) CountForEmail(emailAddr string) (int64, error) {
	emailAddr = strings.ToLower(emailAddr)
	var n int64
	for _, r := range f.records {
		if r.Email == emailAddr {
			n++
		}
	}
	return n, nil
}

// latest возвращает последнюю запись для прямых проверок в тестах
func (f *fakeOTPRepo) latest(emailAddr string) *models.EmailOTP {
	emailAddr = strings.ToLower(emailAddr)
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].Email == emailAddr {
			return f.records[i]
		}
	}
	return nil
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)
var _ repositories.OTPRepository = (*fakeOTPRepo)(nil)
var _ email.Provider = (*email.MockProvider)(nil)
