package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"accomform_backend/internal/models"
)

type InitializeRequest struct {
	Email         string `json:"email" validate:"required,email"`
	CaptchaID     string `json:"captchaId,omitempty"`
	CaptchaAnswer string `json:"captchaAnswer,omitempty"`
}

type InitializeResponse struct {
	SubmissionID string                  `json:"submissionId"`
	Status       models.SubmissionStatus `json:"status"`
	Success      bool                    `json:"success"`
	Message      string                  `json:"message"`
}

type SendVerificationRequest struct {
	SubmissionID string `json:"submissionId" validate:"required,uuid"`
	Email        string `json:"email" validate:"required,email"`
}

type SendVerificationResponse struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	TokenExpiresAt time.Time `json:"tokenExpiresAt"`
}

type VerifyEmailRequest struct {
	SubmissionID string `json:"submissionId" validate:"required,uuid"`
	Token        string `json:"token" validate:"required,numeric"`
}

type SubmitResponse struct {
	SubmissionID string                  `json:"submissionId"`
	Status       models.SubmissionStatus `json:"status"`
	Success      bool                    `json:"success"`
	Message      string                  `json:"message"`
}

type StatusResponse struct {
	SubmissionID   string                  `json:"submissionId"`
	Status         models.SubmissionStatus `json:"status"`
	UserEmail      string                  `json:"userEmail"`
	SubmittedAt    *time.Time              `json:"submittedAt"`
	EmailVerified  bool                    `json:"emailVerified"`
	PDFFileName    string                  `json:"pdfFileName"`
	BlobStorageURL string                  `json:"blobStorageUrl"`
	Logs           []LogEntry              `json:"logs"`
}

type LogEntry struct {
	Action    models.LogAction `json:"action"`
	Details   string           `json:"details"`
	Timestamp time.Time        `json:"timestamp"`
}

// --- submit request parsing ---

// SubmitVariant tags which request shape the submit endpoint received.
type SubmitVariant string

const (
	// VariantWrapped is the current shape: {"submissionId": ..., "form_data": {...}}.
	VariantWrapped SubmitVariant = "wrapped"
	// VariantLegacy is the bare form payload older clients still send.
	VariantLegacy SubmitVariant = "legacy"
)

// WrappedSubmitRequest is the current submit body.
type WrappedSubmitRequest struct {
	SubmissionID string                    `json:"submissionId"`
	FormData     *models.AccommodationForm `json:"form_data"`
}

// SubmitRequest is the parsed submit body: exactly one of the two
// variants, dispatched on Variant rather than on ad hoc key checks.
type SubmitRequest struct {
	Variant      SubmitVariant
	SubmissionID string
	Form         *models.AccommodationForm
}

// ParseSubmitRequest decodes the raw body into one of the two explicit
// request shapes. A body with a form_data key must parse as the wrapped
// shape; anything else must parse as the bare legacy form.
func ParseSubmitRequest(raw []byte) (*SubmitRequest, error) {
	var probe struct {
		FormData json.RawMessage `json:"form_data"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("invalid JSON in request body: %w", err)
	}

	if probe.FormData != nil {
		var wrapped WrappedSubmitRequest
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("invalid wrapped submission request: %w", err)
		}
		if wrapped.FormData == nil {
			return nil, fmt.Errorf("form_data must be an object")
		}
		return &SubmitRequest{
			Variant:      VariantWrapped,
			SubmissionID: wrapped.SubmissionID,
			Form:         wrapped.FormData,
		}, nil
	}

	var legacy models.AccommodationForm
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("invalid form payload: %w", err)
	}
	return &SubmitRequest{
		Variant: VariantLegacy,
		Form:    &legacy,
	}, nil
}
