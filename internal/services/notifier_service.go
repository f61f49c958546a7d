package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"accomform_backend/internal/email"
	"accomform_backend/internal/logger"
	"accomform_backend/internal/models"
	"accomform_backend/internal/storage"
)

// Notifier covers every side effect the form workflow performs outside
// the database: verification codes, the archived PDF and the two
// result emails. The SubmitForm pipeline treats the emails as
// best-effort and the upload as mandatory.
type Notifier interface {
	SendVerificationCode(ctx context.Context, to, token string, expiryMinutes int) error
	UploadFormPdf(ctx context.Context, filename string, content []byte) (string, error)
	SendConfirmation(ctx context.Context, form *models.AccommodationForm, submissionID, pdfName string, pdfContent []byte, submittedAt time.Time) error
	SendToCompany(ctx context.Context, form *models.AccommodationForm, submissionID, pdfName string, pdfContent []byte, blobURL string, submittedAt time.Time) error
}

// NotifierService wires the email provider and blob storage behind the
// Notifier interface.
type NotifierService struct {
	provider     email.Provider
	store        storage.Storage
	companyEmail string
	companyName  string
	supportEmail string
}

func NewNotifierService(provider email.Provider, store storage.Storage, companyEmail, companyName, supportEmail string) *NotifierService {
	return &NotifierService{
		provider:     provider,
		store:        store,
		companyEmail: companyEmail,
		companyName:  companyName,
		supportEmail: supportEmail,
	}
}

func (n *NotifierService) SendVerificationCode(ctx context.Context, to, token string, expiryMinutes int) error {
	data := email.TemplateData{
		"Token":         token,
		"ExpiryMinutes": expiryMinutes,
		"CompanyName":   n.companyName,
	}
	if err := n.provider.SendTemplate([]string{to}, "Your verification code", email.TemplateVerification, data); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (n *NotifierService) UploadFormPdf(ctx context.Context, filename string, content []byte) (string, error) {
	if err := n.store.Save(ctx, filename, bytes.NewReader(content), "application/pdf"); err != nil {
		return "", fmt.Errorf("failed to upload PDF: %w", err)
	}
	url, err := n.store.GetURL(ctx, filename)
	if err != nil {
		return "", fmt.Errorf("failed to resolve PDF URL: %w", err)
	}
	return url, nil
}

func (n *NotifierService) SendConfirmation(ctx context.Context, form *models.AccommodationForm, submissionID, pdfName string, pdfContent []byte, submittedAt time.Time) error {
	data := email.TemplateData{
		"TenantName":    form.TenantDetails.FullName,
		"TenantEmail":   form.TenantDetails.Email,
		"SubmittedAt":   submittedAt.UTC().Format("2 January 2006 15:04 UTC"),
		"ApplicationID": submissionID,
		"SupportEmail":  n.supportEmail,
		"CompanyName":   n.companyName,
	}
	attachment := email.Attachment{Name: pdfName, Content: pdfContent, ContentType: "application/pdf"}
	if err := n.provider.SendTemplate([]string{form.TenantDetails.Email},
		"Your accommodation application has been received", email.TemplateConfirmation, data, attachment); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

func (n *NotifierService) SendToCompany(ctx context.Context, form *models.AccommodationForm, submissionID, pdfName string, pdfContent []byte, blobURL string, submittedAt time.Time) error {
	if n.companyEmail == "" {
		logger.CtxWarn(ctx, "company email not configured, skipping operator notification")
		return nil
	}
	data := email.TemplateData{
		"TenantName":   form.TenantDetails.FullName,
		"TenantEmail":  form.TenantDetails.Email,
		"SubmissionID": submissionID,
		"SubmittedAt":  submittedAt.UTC().Format("2 January 2006 15:04 UTC"),
		"BlobURL":      blobURL,
	}
	attachment := email.Attachment{Name: pdfName, Content: pdfContent, ContentType: "application/pdf"}
	if err := n.provider.SendTemplate([]string{n.companyEmail},
		fmt.Sprintf("New application: %s", form.TenantDetails.FullName), email.TemplateCompanyNotification, data, attachment); err != nil {
		return fmt.Errorf("failed to send company notification: %w", err)
	}
	return nil
}
