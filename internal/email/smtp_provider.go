package email

import (
	"crypto/tls"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"jobboard_backend/internal/logger"
)

// SMTPProvider отправляет письма через SMTP сервер
type SMTPProvider struct {
	config    SMTPConfig
	templates *TemplateManager
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(cfg SMTPConfig, templates *TemplateManager) *SMTPProvider {
	return &SMTPProvider{
		config:    cfg,
		templates: templates,
	}
}

func (p *SMTPProvider) Name() string {
	return "smtp"
}

func (p *SMTPProvider) Validate() error {
	return p.config.Validate()
}

// Send отправляет письмо через SMTP
func (p *SMTPProvider) Send(email *Email) error {
	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = p.config.FromAddress()
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	if len(email.Cc) > 0 {
		m.SetHeader("Cc", email.Cc...)
	}
	if len(email.Bcc) > 0 {
		m.SetHeader("Bcc", email.Bcc...)
	}
	m.SetHeader("Subject", email.Subject)

	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}

	for _, att := range email.Attachments {
		att := att
		m.Attach(att.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(att.Content)
			return err
		}), gomail.SetHeader(map[string][]string{"Content-Type": {att.ContentType}}))
	}

	d := gomail.NewDialer(p.config.Host, p.config.Port, p.config.Username, p.config.Password)
	if p.config.UseTLS {
		d.TLSConfig = &tls.Config{ServerName: p.config.Host}
	}

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}

	logger.Debug("email sent", "to", email.To, "subject", email.Subject)
	return nil
}

// SendOTP отправляет письмо с кодом подтверждения
func (p *SMTPProvider) SendOTP(to, code string, expiresInMinutes int) error {
	subject, htmlBody, textBody, err := p.templates.Render("email_verification", TemplateData{
		"Code":             code,
		"ExpiresInMinutes": expiresInMinutes,
	})
	if err != nil {
		return err
	}
	return p.Send(&Email{
		To:       []string{to},
		Subject:  subject,
		Body:     textBody,
		HTMLBody: htmlBody,
	})
}
