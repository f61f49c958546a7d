package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Submission is one applicant's end-to-end form-processing record.
type Submission struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"submissionId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	UserEmail     string           `gorm:"index;not null" json:"userEmail"`
	Status        SubmissionStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	EmailVerified bool             `gorm:"default:false" json:"emailVerified"`

	// Verification token state. LastResendAt backs the server-side
	// resend cooldown.
	VerificationToken string     `json:"-"`
	TokenExpiresAt    *time.Time `json:"-"`
	LastResendAt      *time.Time `json:"-"`

	// The full application form, stored whole once accepted. Opaque to
	// the store.
	FormData datatypes.JSON `json:"-"`

	PDFFileName    string     `json:"pdfFileName"`
	BlobStorageURL string     `json:"blobStorageUrl"`
	SubmittedAt    *time.Time `gorm:"index" json:"submittedAt"`

	// Caller metadata captured on the direct-submission path. Opaque
	// key/value bag, never interpreted.
	RequestMetadata datatypes.JSON `json:"-"`

	Logs []SubmissionLog `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"logs"`
}

// SubmissionLog is one entry of the append-only activity trail. Every
// status transition appends exactly one entry.
type SubmissionLog struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	SubmissionID string    `gorm:"type:uuid;not null;index" json:"-"`
	Action       LogAction `gorm:"type:varchar(40);not null" json:"action"`
	Details      string    `json:"details"`
	CreatedAt    time.Time `gorm:"index" json:"timestamp"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
