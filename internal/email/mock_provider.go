package email

import (
	"sync"

	"jobboard_backend/internal/logger"
)

// MockProvider пишет письма в лог вместо реальной отправки.
// Используется в development окружении и в тестах.
type MockProvider struct {
	mu   sync.Mutex
	sent []*Email
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return "mock"
}

func (p *MockProvider) Validate() error {
	return nil
}

func (p *MockProvider) Send(email *Email) error {
	p.mu.Lock()
	p.sent = append(p.sent, email)
	p.mu.Unlock()

	logger.Info("mock email", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *MockProvider) SendOTP(to, code string, expiresInMinutes int) error {
	logger.Info("mock otp email", "to", to, "code", code, "expires_in_minutes", expiresInMinutes)
	return p.Send(&Email{
		To:      []string{to},
		Subject: defaultOTPSubject,
		Body:    code,
	})
}

// Sent возвращает копию отправленных писем
func (p *MockProvider) Sent() []*Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Email, len(p.sent))
	copy(out, p.sent)
	return out
}
