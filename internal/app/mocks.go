package app

import (
	"accomform_backend/internal/email"
	"accomform_backend/internal/logger"
)

// LogEmailProvider is the development fallback when SMTP is not
// configured. It logs instead of sending, so the verification code is
// readable from the server output.
type LogEmailProvider struct{}

func (m *LogEmailProvider) Send(e *email.Email) error {
	logger.Info("email (not sent, SMTP unconfigured)", "to", e.To, "subject", e.Subject)
	return nil
}

func (m *LogEmailProvider) SendTemplate(to []string, subject, templateName string, data email.TemplateData, attachments ...email.Attachment) error {
	logger.Info("email (not sent, SMTP unconfigured)",
		"to", to, "subject", subject, "template", templateName, "data", data, "attachments", len(attachments))
	return nil
}
