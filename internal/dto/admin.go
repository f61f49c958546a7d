package dto

import (
	"time"

	"accomform_backend/internal/models"
)

// SubmissionSummary is the listing projection, without the form payload.
type SubmissionSummary struct {
	SubmissionID  string                  `json:"submissionId"`
	UserEmail     string                  `json:"userEmail"`
	Status        models.SubmissionStatus `json:"status"`
	EmailVerified bool                    `json:"emailVerified"`
	PDFFileName   string                  `json:"pdfFileName"`
	SubmittedAt   *time.Time              `json:"submittedAt"`
	CreatedAt     time.Time               `json:"createdAt"`
}

type ListSubmissionsResponse struct {
	Submissions []SubmissionSummary `json:"submissions"`
	Total       int64               `json:"total"`
	Page        int                 `json:"page"`
	Limit       int                 `json:"limit"`
	TotalPages  int64               `json:"totalPages"`
}

type StatisticsResponse struct {
	PeriodDays       int              `json:"periodDays"`
	TotalSubmissions int64            `json:"totalSubmissions"`
	TotalAllTime     int64            `json:"totalAllTime"`
	StatusBreakdown  map[string]int64 `json:"statusBreakdown"`
	DailySubmissions map[string]int64 `json:"dailySubmissions"`
	AveragePerDay    float64          `json:"averagePerDay"`
}

type CaptchaResponse struct {
	ChallengeID string `json:"challengeId"`
	Question    string `json:"question"`
}
