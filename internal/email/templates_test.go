package email

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDefaultOTPTemplate(t *testing.T) {
	tm, err := NewTemplateManager("")
	require.NoError(t, err)

	subject, htmlBody, textBody, err := tm.Render("email_verification", TemplateData{
		"Code":             "123456",
		"ExpiresInMinutes": 10,
	})
	require.NoError(t, err)

	assert.Equal(t, defaultOTPSubject, subject)
	assert.Contains(t, htmlBody, "123456")
	assert.Contains(t, htmlBody, "10 minutes")
	assert.Contains(t, textBody, "123456")
	assert.Contains(t, textBody, "10 minutes")
}

func TestRenderUnknownTemplate(t *testing.T) {
	tm, err := NewTemplateManager("")
	require.NoError(t, err)

	_, _, _, err = tm.Render("password_reset", nil)
	assert.Error(t, err)
}

func TestTemplateDirOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	custom := `<html><body>Code: {{.Code}}</body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "email_verification.html"), []byte(custom), 0644))

	tm, err := NewTemplateManager(dir)
	require.NoError(t, err)

	_, htmlBody, _, err := tm.Render("email_verification", TemplateData{"Code": "654321"})
	require.NoError(t, err)
	assert.Contains(t, htmlBody, "Code: 654321")
}

func TestTemplateDirRejectsBrokenTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.html"), []byte("{{.Unclosed"), 0644))

	_, err := NewTemplateManager(dir)
	assert.Error(t, err)
}

func TestMockProviderRecords(t *testing.T) {
	p := NewMockProvider()
	require.NoError(t, p.Validate())

	require.NoError(t, p.SendOTP("user@example.com", "123456", 10))

	sent := p.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"user@example.com"}, sent[0].To)
	assert.Equal(t, "123456", sent[0].Body)
}
