package apperrors

// Коды ошибок сгруппированные по доменам
const (
	// Аутентификация и авторизация
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	// Валидация
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Ресурсы
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeCompanyNotFound     ErrorCode = "COMPANY_NOT_FOUND"
	CodeJobNotFound         ErrorCode = "JOB_NOT_FOUND"
	CodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"
	CodeFileNotFound        ErrorCode = "FILE_NOT_FOUND"

	// Верификация email
	CodeVerificationFailed   ErrorCode = "VERIFICATION_FAILED"
	CodeVerificationRequired ErrorCode = "VERIFICATION_REQUIRED"
	CodeAlreadyVerified      ErrorCode = "ALREADY_VERIFIED"
	CodeOTPRateLimited       ErrorCode = "OTP_RATE_LIMITED"

	// Бизнес-логика
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeUserInactive       ErrorCode = "USER_INACTIVE"
	CodeCannotModifySelf   ErrorCode = "CANNOT_MODIFY_SELF"

	// Системные ошибки
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
)
