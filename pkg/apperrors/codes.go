package apperrors

// ErrorCode identifies an error class across the service.
type ErrorCode string

const (
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
	CodeNotFound      ErrorCode = "NOT_FOUND"

	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Submission gates.
	CodeConsentRequired       ErrorCode = "CONSENT_REQUIRED"
	CodeDeclarationIncomplete ErrorCode = "DECLARATION_INCOMPLETE"

	// Email verification.
	CodeVerificationMismatch ErrorCode = "VERIFICATION_MISMATCH"
	CodeVerificationExpired  ErrorCode = "VERIFICATION_EXPIRED"
	CodeVerificationRequired ErrorCode = "VERIFICATION_REQUIRED"
	CodeResendThrottled      ErrorCode = "RESEND_THROTTLED"
	CodeInvalidStatus        ErrorCode = "INVALID_STATUS"
	CodeCaptchaFailed        ErrorCode = "CAPTCHA_FAILED"

	// Downstream pipeline stages, sub-categorized for diagnostics.
	CodeDownstreamPdf     ErrorCode = "DOWNSTREAM_PDF"
	CodeDownstreamStorage ErrorCode = "DOWNSTREAM_STORAGE"
	CodeDownstreamEmail   ErrorCode = "DOWNSTREAM_EMAIL"
	CodeDownstreamUnknown ErrorCode = "DOWNSTREAM_UNKNOWN"
)

// IsDownstream reports whether the code belongs to the pdf/storage/email
// pipeline family. These collapse to a generic message outside
// development mode.
func (c ErrorCode) IsDownstream() bool {
	switch c {
	case CodeDownstreamPdf, CodeDownstreamStorage, CodeDownstreamEmail, CodeDownstreamUnknown:
		return true
	}
	return false
}
