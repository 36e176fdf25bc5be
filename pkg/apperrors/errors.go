package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// AppError - основная структура ошибки приложения
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Конструктор
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// С цепочкой ошибок
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// Вспомогательные методы
func (e *AppError) WithDetails(details interface{}) *AppError {
	copied := *e
	copied.Details = details
	// копия остается сопоставимой с исходной ошибкой через errors.Is
	if copied.Err == nil {
		copied.Err = e
	}
	return &copied
}

// Для маршалинга в JSON
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is - обертка над стандартной функцией errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As - обертка над стандартной функцией errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Предопределенные ошибки
var (
	// Аутентификация
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Incorrect email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Пользователи
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "Email already registered", http.StatusConflict)
	ErrUserInactive       = New(CodeUserInactive, "Inactive user", http.StatusBadRequest)
	ErrWeakPassword       = New(CodeWeakPassword, "Password does not meet the complexity requirements", http.StatusBadRequest)
	ErrInvalidUserRole    = New(CodeInvalidUserRole, "Invalid user role", http.StatusBadRequest)
	ErrCannotModifySelf   = New(CodeCannotModifySelf, "Cannot modify your own account", http.StatusBadRequest)

	// Верификация email.
	// NotFound/Expired/Mismatch/AlreadyUsed - разные значения для логов и тестов,
	// но одинаковый код и сообщение наружу: клиент не должен узнать,
	// какие коды существовали и были ли они уже использованы.
	ErrOTPNotFound    = New(CodeVerificationFailed, "Invalid or expired verification code", http.StatusBadRequest)
	ErrOTPExpired     = New(CodeVerificationFailed, "Invalid or expired verification code", http.StatusBadRequest)
	ErrOTPMismatch    = New(CodeVerificationFailed, "Invalid or expired verification code", http.StatusBadRequest)
	ErrOTPAlreadyUsed = New(CodeVerificationFailed, "Invalid or expired verification code", http.StatusBadRequest)

	ErrAlreadyVerified      = New(CodeAlreadyVerified, "Email is already verified", http.StatusBadRequest)
	ErrOTPRateLimited       = New(CodeOTPRateLimited, "A verification code was sent recently, please wait before requesting another", http.StatusTooManyRequests)
	ErrVerificationRequired = New(CodeVerificationRequired, "Email verification required", http.StatusForbidden)

	// Компании и вакансии
	ErrCompanyNotFound     = New(CodeCompanyNotFound, "Company not found", http.StatusNotFound)
	ErrJobNotFound         = New(CodeJobNotFound, "Job not found", http.StatusNotFound)
	ErrJobNotActive        = New("JOB_NOT_ACTIVE", "Job is not active", http.StatusBadRequest)
	ErrApplicationNotFound = New(CodeApplicationNotFound, "Application not found", http.StatusNotFound)
	ErrAlreadyApplied      = New("ALREADY_APPLIED", "Application already exists for this job", http.StatusConflict)

	// Загрузка файлов
	ErrFileNotFound    = New(CodeFileNotFound, "File not found", http.StatusNotFound)
	ErrFileTooLarge    = New("FILE_TOO_LARGE", "File size exceeds the allowed limit", http.StatusRequestEntityTooLarge)
	ErrInvalidFileType = New("INVALID_FILE_TYPE", "Invalid file type", http.StatusBadRequest)

	// Валидация
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// Функции-помощники для создания ошибок с деталями
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeUserNotFound, message, http.StatusNotFound)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}
