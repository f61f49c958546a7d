package models

type SubmissionStatus string
type LogAction string

const (
	StatusDraft         SubmissionStatus = "draft"
	StatusEmailSent     SubmissionStatus = "email_sent"
	StatusEmailVerified SubmissionStatus = "email_verified"
	StatusSubmitted     SubmissionStatus = "submitted"
	StatusPdfGenerated  SubmissionStatus = "pdf_generated"
	StatusCompleted     SubmissionStatus = "completed"
	StatusFailed        SubmissionStatus = "failed"

	ActionSessionInitialized    LogAction = "SessionInitialized"
	ActionEmailVerificationSent LogAction = "EmailVerificationSent"
	ActionEmailVerified         LogAction = "EmailVerified"
	ActionFormSubmitted         LogAction = "FormSubmitted"
	ActionPdfGenerated          LogAction = "PdfGenerated"
	ActionPdfUploaded           LogAction = "PdfUploaded"
	ActionEmailsSent            LogAction = "EmailsSent"
	ActionDirectSubmission      LogAction = "DirectSubmission"
)

// statusRank orders the forward-only chain. Failed is terminal and sits
// outside the chain: any state may move to it, nothing leaves it.
var statusRank = map[SubmissionStatus]int{
	StatusDraft:         0,
	StatusEmailSent:     1,
	StatusEmailVerified: 2,
	StatusSubmitted:     3,
	StatusPdfGenerated:  4,
	StatusCompleted:     5,
}

// CanTransition reports whether a submission may move from one status to
// another. Backward transitions are never allowed.
func CanTransition(from, to SubmissionStatus) bool {
	if from == StatusFailed {
		return false
	}
	if to == StatusFailed {
		return true
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

func (s SubmissionStatus) Valid() bool {
	if s == StatusFailed {
		return true
	}
	_, ok := statusRank[s]
	return ok
}
