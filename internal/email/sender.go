package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"strings"

	"gopkg.in/gomail.v2"
)

// SMTPSender sends mail through gomail with the built-in templates.
type SMTPSender struct {
	config    SMTPConfig
	templates *TemplateManager
	dialer    *gomail.Dialer
}

func NewSMTPSender(config SMTPConfig) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if config.UseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: config.Host}
	}

	return &SMTPSender{
		config:    config,
		templates: tm,
		dialer:    dialer,
	}, nil
}

// Send delivers a single message.
func (s *SMTPSender) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
	}

	for _, att := range email.Attachments {
		content := att.Content
		m.Attach(att.Name,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(content))
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}),
		)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", strings.Join(email.To, ", "), err)
	}
	return nil
}

// SendTemplate renders the named template and sends it, with a plain
// text fallback derived from the HTML.
func (s *SMTPSender) SendTemplate(to []string, subject, templateName string, data TemplateData, attachments ...Attachment) error {
	htmlBody, err := s.templates.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return s.Send(&Email{
		To:          to,
		Subject:     subject,
		Body:        htmlToText(htmlBody),
		HTMLBody:    htmlBody,
		Attachments: attachments,
	})
}

// htmlToText is a rough conversion good enough for the text/plain
// alternative part.
func htmlToText(html string) string {
	text := strings.ReplaceAll(html, "<br/>", "\n")
	text = strings.ReplaceAll(text, "<br>", "\n")
	text = strings.ReplaceAll(text, "<p>", "\n")
	text = strings.ReplaceAll(text, "</p>", "\n")

	for {
		start := strings.Index(text, "<")
		if start == -1 {
			break
		}
		end := strings.Index(text[start:], ">")
		if end == -1 {
			break
		}
		text = text[:start] + text[start+end+1:]
	}

	return strings.TrimSpace(text)
}
