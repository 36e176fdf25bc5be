package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"path/filepath"
	texttemplate "text/template"
)

// шаблоны по умолчанию, используются если каталог шаблонов не задан
const defaultOTPSubject = "Your verification code"

const defaultOTPHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Email verification</h2>
  <p>Use the code below to verify your email address:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
  <p>The code expires in {{.ExpiresInMinutes}} minutes.</p>
  <p>If you did not request this code, you can safely ignore this message.</p>
</body>
</html>`

const defaultOTPText = `Your verification code: {{.Code}}

The code expires in {{.ExpiresInMinutes}} minutes.
If you did not request this code, you can safely ignore this message.`

type templateSet struct {
	subject string
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

// TemplateManager хранит и рендерит шаблоны писем
type TemplateManager struct {
	templates map[string]*templateSet
}

// NewTemplateManager загружает шаблоны. Если dir пустой, используются встроенные.
func NewTemplateManager(dir string) (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*templateSet)}
	if err := tm.registerDefaults(); err != nil {
		return nil, err
	}
	if dir != "" {
		if err := tm.loadFromDir(dir); err != nil {
			return nil, fmt.Errorf("failed to load email templates from %s: %w", dir, err)
		}
	}
	return tm, nil
}

func (tm *TemplateManager) registerDefaults() error {
	html, err := htmltemplate.New("otp").Parse(defaultOTPHTML)
	if err != nil {
		return err
	}
	text, err := texttemplate.New("otp").Parse(defaultOTPText)
	if err != nil {
		return err
	}
	tm.templates["email_verification"] = &templateSet{
		subject: defaultOTPSubject,
		html:    html,
		text:    text,
	}
	return nil
}

// loadFromDir перекрывает встроенные шаблоны файлами <name>.html из каталога
func (tm *TemplateManager) loadFromDir(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	for _, f := range files {
		name := filepath.Base(f)
		name = name[:len(name)-len(filepath.Ext(name))]
		html, err := htmltemplate.ParseFiles(f)
		if err != nil {
			return fmt.Errorf("parse %s: %w", f, err)
		}
		existing, ok := tm.templates[name]
		if !ok {
			existing = &templateSet{subject: defaultOTPSubject}
			tm.templates[name] = existing
		}
		existing.html = html
	}
	return nil
}

// Render рендерит шаблон по имени
func (tm *TemplateManager) Render(templateName string, data TemplateData) (subject, htmlBody, textBody string, err error) {
	set, ok := tm.templates[templateName]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", templateName)
	}
	var htmlBuf bytes.Buffer
	if set.html != nil {
		if err := set.html.Execute(&htmlBuf, data); err != nil {
			return "", "", "", fmt.Errorf("render html template %q: %w", templateName, err)
		}
	}
	var textBuf bytes.Buffer
	if set.text != nil {
		if err := set.text.Execute(&textBuf, data); err != nil {
			return "", "", "", fmt.Errorf("render text template %q: %w", templateName, err)
		}
	}
	return set.subject, htmlBuf.String(), textBuf.String(), nil
}
