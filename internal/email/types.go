package email

// Attachment is a file carried with an email.
type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

// Email is one outbound message.
type Email struct {
	To          []string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []Attachment
}

// TemplateData feeds the html templates.
type TemplateData map[string]interface{}

// Provider sends email. The SMTP implementation is the production one;
// tests substitute a fake.
type Provider interface {
	Send(email *Email) error
	SendTemplate(to []string, subject, templateName string, data TemplateData, attachments ...Attachment) error
}
