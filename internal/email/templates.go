package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names used by the notifier.
const (
	TemplateVerification        = "verification"
	TemplateConfirmation        = "confirmation"
	TemplateCompanyNotification = "company_notification"
)

// TemplateManager holds the parsed html templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

var builtinTemplates = map[string]string{
	TemplateVerification: `<html>
<body>
  <h2>Verification Code</h2>
  <p>Your verification code for the accommodation application form is:</p>
  <h1 style="color: #007acc; font-family: monospace; letter-spacing: 2px;">{{.Token}}</h1>
  <p>This code will expire in <strong>{{.ExpiryMinutes}} minutes</strong>.</p>
  <p>If you did not request this code, please ignore this email.</p>
  <hr>
  <p><em>{{.CompanyName}}</em></p>
</body>
</html>`,

	TemplateConfirmation: `<html>
<body>
  <h2>Accommodation Application Confirmation</h2>
  <p>Dear <strong>{{.TenantName}}</strong>,</p>
  <p>Thank you for submitting your accommodation application form.</p>
  <p>Your application has been received and is being processed. You will receive a response within <strong>2-3 business days</strong>.</p>
  <h3>Submission Details:</h3>
  <ul>
    <li><strong>Name:</strong> {{.TenantName}}</li>
    <li><strong>Email:</strong> {{.TenantEmail}}</li>
    <li><strong>Submitted:</strong> {{.SubmittedAt}}</li>
    <li><strong>Application ID:</strong> {{.ApplicationID}}</li>
  </ul>
  <p>Please find your completed application form attached to this email for your records.</p>
  <p>If you have any questions, please contact us at <a href="mailto:{{.SupportEmail}}">{{.SupportEmail}}</a>.</p>
  <hr>
  <p><em>{{.CompanyName}}</em></p>
</body>
</html>`,

	TemplateCompanyNotification: `<html>
<body>
  <h2>New Accommodation Application</h2>
  <h3>Applicant Details:</h3>
  <table border="1" cellpadding="5" cellspacing="0">
    <tr><td><strong>Name:</strong></td><td>{{.TenantName}}</td></tr>
    <tr><td><strong>Email:</strong></td><td>{{.TenantEmail}}</td></tr>
    <tr><td><strong>Submission:</strong></td><td>{{.SubmissionID}}</td></tr>
    <tr><td><strong>Submitted:</strong></td><td>{{.SubmittedAt}}</td></tr>
  </table>
  <p>The complete application form is attached.</p>
  {{if .BlobURL}}<p><strong>Archive URL:</strong> <a href="{{.BlobURL}}">{{.BlobURL}}</a></p>{{end}}
  <p>Please review and process this application.</p>
  <hr>
  <p><em>Accommodation Form System</em></p>
</body>
</html>`,
}
