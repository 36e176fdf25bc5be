package dto

// SendOTPRequest - запрос на отправку кода подтверждения
type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest - запрос на проверку кода
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"otp_code" validate:"required"`
}

// VerifyMyOTPRequest - проверка кода вошедшим пользователем.
// Почта берется из аккаунта, подтвердить чужой адрес нельзя.
type VerifyMyOTPRequest struct {
	Code string `json:"otp_code" validate:"required"`
}

// OTPResponse - ответ на отправку кода.
// OTPCode заполняется только вне production окружения.
type OTPResponse struct {
	Message          string  `json:"message"`
	Success          bool    `json:"success"`
	ExpiresInMinutes int     `json:"expires_in_minutes"`
	OTPCode          *string `json:"otp_code,omitempty"`
}

// VerifyOTPResponse - результат проверки кода
type VerifyOTPResponse struct {
	Message  string `json:"message"`
	Success  bool   `json:"success"`
	Verified bool   `json:"verified"`
}

// VerificationStatusResponse - статус подтверждения почты
type VerificationStatusResponse struct {
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
}
