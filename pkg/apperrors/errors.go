package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the error value all workflow operations return. It crosses
// the component boundary as a result object, never as a panic.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying cause to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- constructors used across the workflow ---

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).WithDetails(details)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, "submission", message, http.StatusNotFound)
}

// ConsentError rejects a submission whose consent box is unchecked.
func ConsentError() *AppError {
	return New(CodeConsentRequired, "submission",
		"Consent must be given before the application can be accepted", http.StatusBadRequest)
}

// DeclarationError lists every failing declaration, not just the first.
func DeclarationError(failed []string) *AppError {
	messages := make([]string, 0, len(failed))
	for _, name := range failed {
		messages = append(messages, "declaration '"+name+"' must be confirmed")
	}
	return New(CodeDeclarationIncomplete, "submission",
		"All declaration statements must be confirmed", http.StatusBadRequest).
		WithDetails(messages)
}

func VerificationMismatchError() *AppError {
	return New(CodeVerificationMismatch, "verification",
		"Incorrect verification code", http.StatusBadRequest)
}

func VerificationExpiredError() *AppError {
	return New(CodeVerificationExpired, "verification",
		"Verification code has expired, please request a new one", http.StatusBadRequest)
}

func ResendThrottledError(seconds int) *AppError {
	return New(CodeResendThrottled, "verification",
		fmt.Sprintf("Please wait %d seconds before requesting another code", seconds),
		http.StatusBadRequest)
}

// DownstreamError tags a pdf/storage/email pipeline failure with its
// stage category.
func DownstreamError(code ErrorCode, stage string, err error) *AppError {
	return Wrap(err, code, "pipeline",
		fmt.Sprintf("Submission processing failed at the %s stage", stage),
		http.StatusInternalServerError)
}
