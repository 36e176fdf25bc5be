package email

// Provider определяет интерфейс для провайдеров отправки email
type Provider interface {
	// Send отправляет произвольное письмо
	Send(email *Email) error
	// SendOTP отправляет письмо с кодом подтверждения
	SendOTP(to, code string, expiresInMinutes int) error
	// Validate проверяет конфигурацию провайдера
	Validate() error
	// Name возвращает имя провайдера для логов
	Name() string
}

// TemplateRenderer рендерит именованные шаблоны писем
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (subject, htmlBody, textBody string, err error)
}
