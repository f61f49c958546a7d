package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"accomform_backend/internal/dto"
	"accomform_backend/internal/logger"
	"accomform_backend/internal/models"
	"accomform_backend/internal/repositories"
	"accomform_backend/internal/validator"
	"accomform_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// FormService drives the whole application workflow: session creation,
// email verification, form acceptance and the PDF-archive-notify
// pipeline. All status changes go through the repository's
// transactional transition helper.
type FormService struct {
	repo           repositories.SubmissionRepository
	verifier       *VerificationService
	renderer       DocumentRenderer
	notifier       Notifier
	validate       *validator.Validator
	resendCooldown time.Duration
	now            func() time.Time
}

func NewFormService(
	repo repositories.SubmissionRepository,
	verifier *VerificationService,
	renderer DocumentRenderer,
	notifier Notifier,
	validate *validator.Validator,
	resendCooldownSecs int,
) *FormService {
	if resendCooldownSecs <= 0 {
		resendCooldownSecs = 60
	}
	return &FormService{
		repo:           repo,
		verifier:       verifier,
		renderer:       renderer,
		notifier:       notifier,
		validate:       validate,
		resendCooldown: time.Duration(resendCooldownSecs) * time.Second,
		now:            time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (s *FormService) WithClock(now func() time.Time) *FormService {
	s.now = now
	return s
}

// InitializeSession creates a draft submission for the given email.
// The row and its SessionInitialized log commit together.
func (s *FormService) InitializeSession(ctx context.Context, email string) (*dto.InitializeResponse, error) {
	sub := &models.Submission{
		UserEmail: strings.ToLower(strings.TrimSpace(email)),
		Status:    models.StatusDraft,
	}
	if err := s.repo.CreateWithLog(sub, models.ActionSessionInitialized,
		fmt.Sprintf("session initialized for %s", sub.UserEmail)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "submission session initialized",
		"submission_id", sub.ID, "email", sub.UserEmail)

	return &dto.InitializeResponse{
		SubmissionID: sub.ID,
		Status:       sub.Status,
		Success:      true,
		Message:      "Session initialized. Request a verification code to continue.",
	}, nil
}

// SendVerification issues a fresh token and emails it. A repeat call
// within the cooldown window is rejected; a later repeat overwrites the
// stored token and logs another EmailVerificationSent entry without
// moving the status again.
func (s *FormService) SendVerification(ctx context.Context, submissionID, email string) (*dto.SendVerificationResponse, error) {
	sub, err := s.findSubmission(submissionID)
	if err != nil {
		return nil, err
	}

	if sub.Status != models.StatusDraft && sub.Status != models.StatusEmailSent {
		return nil, invalidStatusError(sub.Status, "send-verification")
	}

	if sub.LastResendAt != nil {
		elapsed := s.now().Sub(*sub.LastResendAt)
		if elapsed < s.resendCooldown {
			remaining := int((s.resendCooldown - elapsed).Seconds()) + 1
			return nil, apperrors.ResendThrottledError(remaining)
		}
	}

	token, expiresAt, err := s.verifier.Generate()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	sentAt := s.now()
	sub.UserEmail = strings.ToLower(strings.TrimSpace(email))
	sub.VerificationToken = token
	sub.TokenExpiresAt = &expiresAt
	sub.LastResendAt = &sentAt
	if err := s.repo.Update(sub); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.notifier.SendVerificationCode(ctx, sub.UserEmail, token, s.verifier.ExpiryMinutes()); err != nil {
		logger.CtxWithError(ctx, "verification email failed", err, "submission_id", sub.ID)
		return nil, apperrors.DownstreamError(apperrors.CodeDownstreamEmail, "verification email", err)
	}

	details := fmt.Sprintf("verification code sent to %s", sub.UserEmail)
	if sub.Status == models.StatusDraft {
		err = s.repo.TransitionWithLog(sub.ID, models.StatusEmailSent, models.ActionEmailVerificationSent, details)
	} else {
		err = s.repo.AppendLog(sub.ID, models.ActionEmailVerificationSent, details+" (resend)")
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "verification code sent", "submission_id", sub.ID)
	return &dto.SendVerificationResponse{
		Success:        true,
		Message:        "Verification code sent.",
		TokenExpiresAt: expiresAt,
	}, nil
}

// VerifyToken checks the presented code. Expiry wins over mismatch, so
// a stale code never leaks whether its digits were right.
func (s *FormService) VerifyToken(ctx context.Context, submissionID, token string) (*dto.SubmitResponse, error) {
	sub, err := s.findSubmission(submissionID)
	if err != nil {
		return nil, err
	}

	if sub.Status != models.StatusEmailSent {
		if sub.EmailVerified {
			return &dto.SubmitResponse{
				SubmissionID: sub.ID,
				Status:       sub.Status,
				Success:      true,
				Message:      "Email already verified.",
			}, nil
		}
		return nil, invalidStatusError(sub.Status, "verify-email")
	}

	if err := s.verifier.Check(sub.VerificationToken, sub.TokenExpiresAt, token); err != nil {
		return nil, err
	}

	sub.EmailVerified = true
	sub.VerificationToken = ""
	sub.TokenExpiresAt = nil
	if err := s.repo.Update(sub); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.repo.TransitionWithLog(sub.ID, models.StatusEmailVerified, models.ActionEmailVerified,
		fmt.Sprintf("email %s verified", sub.UserEmail)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "email verified", "submission_id", sub.ID)
	return &dto.SubmitResponse{
		SubmissionID: sub.ID,
		Status:       models.StatusEmailVerified,
		Success:      true,
		Message:      "Email verified. You may now submit your application.",
	}, nil
}

// SubmitForm accepts the full application on a verified session and
// runs the PDF pipeline. Consent and declaration gates fire before
// schema validation so an applicant always hears about a missing legal
// attestation first.
func (s *FormService) SubmitForm(ctx context.Context, submissionID string, form *models.AccommodationForm) (*dto.SubmitResponse, error) {
	sub, err := s.findSubmission(submissionID)
	if err != nil {
		return nil, err
	}

	if sub.Status != models.StatusEmailVerified {
		if !sub.EmailVerified {
			return nil, apperrors.New(apperrors.CodeVerificationRequired, "form",
				"email must be verified before submission", 403)
		}
		return nil, invalidStatusError(sub.Status, "submit")
	}

	if err := s.checkGates(form); err != nil {
		return nil, err
	}

	now := s.now()
	form.FormSubmittedAt = &now
	raw, err := json.Marshal(form)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	sub.FormData = datatypes.JSON(raw)
	sub.SubmittedAt = &now
	if err := s.repo.Update(sub); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.repo.TransitionWithLog(sub.ID, models.StatusSubmitted, models.ActionFormSubmitted,
		fmt.Sprintf("application accepted for %s", form.TenantDetails.FullName)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.runPipeline(ctx, sub, form, now)
}

// SubmitFormDirect is the single-call path: no prior session, no email
// verification. The caller metadata bag is stored opaque.
func (s *FormService) SubmitFormDirect(ctx context.Context, form *models.AccommodationForm, metadata map[string]string) (*dto.SubmitResponse, error) {
	if err := s.checkGates(form); err != nil {
		return nil, err
	}

	now := s.now()
	form.FormSubmittedAt = &now
	raw, err := json.Marshal(form)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	metaRaw, err := json.Marshal(metadata)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	sub := &models.Submission{
		UserEmail:       strings.ToLower(strings.TrimSpace(form.TenantDetails.Email)),
		Status:          models.StatusSubmitted,
		FormData:        datatypes.JSON(raw),
		SubmittedAt:     &now,
		RequestMetadata: datatypes.JSON(metaRaw),
	}
	if err := s.repo.CreateWithLog(sub, models.ActionDirectSubmission,
		fmt.Sprintf("direct submission for %s", form.TenantDetails.FullName)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "direct submission accepted", "submission_id", sub.ID)
	return s.runPipeline(ctx, sub, form, now)
}

// GetStatus is a read-only view of the submission and its log trail.
func (s *FormService) GetStatus(ctx context.Context, submissionID string) (*dto.StatusResponse, error) {
	sub, err := s.findSubmission(submissionID)
	if err != nil {
		return nil, err
	}

	logs := make([]dto.LogEntry, 0, len(sub.Logs))
	for _, entry := range sub.Logs {
		logs = append(logs, dto.LogEntry{
			Action:    entry.Action,
			Details:   entry.Details,
			Timestamp: entry.CreatedAt,
		})
	}

	return &dto.StatusResponse{
		SubmissionID:   sub.ID,
		Status:         sub.Status,
		UserEmail:      sub.UserEmail,
		SubmittedAt:    sub.SubmittedAt,
		EmailVerified:  sub.EmailVerified,
		PDFFileName:    sub.PDFFileName,
		BlobStorageURL: sub.BlobStorageURL,
		Logs:           logs,
	}, nil
}

// checkGates enforces the acceptance order: consent first, then all six
// declarations, then the field schema. The legal gates fire regardless
// of whether the rest of the payload would validate.
func (s *FormService) checkGates(form *models.AccommodationForm) error {
	if !form.ConsentAndDeclaration.ConsentGiven {
		return apperrors.ConsentError()
	}
	if failed := form.DeclarationFailures(); len(failed) > 0 {
		return apperrors.DeclarationError(failed)
	}
	if err := s.validate.Validate(form); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return apperrors.ValidationError(verr.Errors)
		}
		return apperrors.ValidationError(err.Error())
	}
	return nil
}

// runPipeline renders the PDF, archives it and sends the result emails.
// Render and upload failures stop the pipeline with the state left at
// the last committed status. The two emails are best effort: the
// submission completes if at least one of them goes out.
func (s *FormService) runPipeline(ctx context.Context, sub *models.Submission, form *models.AccommodationForm, submittedAt time.Time) (*dto.SubmitResponse, error) {
	pdfName := s.renderer.Filename(form, submittedAt)
	pdfContent, err := s.renderer.Render(form, sub.ID, submittedAt)
	if err != nil {
		logger.CtxWithError(ctx, "PDF generation failed", err, "submission_id", sub.ID)
		return nil, apperrors.DownstreamError(apperrors.CodeDownstreamPdf, "PDF generation", err)
	}

	sub.PDFFileName = pdfName
	if err := s.repo.UpdateFields(sub.ID, map[string]interface{}{"pdf_file_name": pdfName}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.repo.TransitionWithLog(sub.ID, models.StatusPdfGenerated, models.ActionPdfGenerated,
		fmt.Sprintf("generated %s (%d bytes)", pdfName, len(pdfContent))); err != nil {
		return nil, apperrors.InternalError(err)
	}

	blobURL, err := s.notifier.UploadFormPdf(ctx, pdfName, pdfContent)
	if err != nil {
		logger.CtxWithError(ctx, "PDF upload failed", err, "submission_id", sub.ID)
		return nil, apperrors.DownstreamError(apperrors.CodeDownstreamStorage, "PDF archival", err)
	}
	sub.BlobStorageURL = blobURL
	if err := s.repo.UpdateFields(sub.ID, map[string]interface{}{"blob_storage_url": blobURL}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.repo.AppendLog(sub.ID, models.ActionPdfUploaded,
		fmt.Sprintf("archived at %s", blobURL)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	confirmErr := s.notifier.SendConfirmation(ctx, form, sub.ID, pdfName, pdfContent, submittedAt)
	if confirmErr != nil {
		logger.CtxWithError(ctx, "confirmation email failed", confirmErr, "submission_id", sub.ID)
	}
	companyErr := s.notifier.SendToCompany(ctx, form, sub.ID, pdfName, pdfContent, blobURL, submittedAt)
	if companyErr != nil {
		logger.CtxWithError(ctx, "company notification failed", companyErr, "submission_id", sub.ID)
	}
	if confirmErr != nil && companyErr != nil {
		return nil, apperrors.DownstreamError(apperrors.CodeDownstreamEmail, "result emails", companyErr)
	}

	if err := s.repo.TransitionWithLog(sub.ID, models.StatusCompleted, models.ActionEmailsSent,
		emailOutcomeDetails(confirmErr, companyErr)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "submission completed",
		"submission_id", sub.ID, "pdf", pdfName, "blob_url", blobURL)
	return &dto.SubmitResponse{
		SubmissionID: sub.ID,
		Status:       models.StatusCompleted,
		Success:      true,
		Message:      "Application submitted. A confirmation email is on its way.",
	}, nil
}

func emailOutcomeDetails(confirmErr, companyErr error) string {
	outcome := func(err error) string {
		if err != nil {
			return "failed"
		}
		return "sent"
	}
	return fmt.Sprintf("confirmation=%s company=%s", outcome(confirmErr), outcome(companyErr))
}

func (s *FormService) findSubmission(id string) (*models.Submission, error) {
	sub, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return nil, apperrors.NewNotFoundError("submission not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}

func invalidStatusError(status models.SubmissionStatus, operation string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidStatus, "form",
		fmt.Sprintf("operation %q is not allowed while the submission is %q", operation, status), 409)
}
