package handlers

import (
	"net/http"
	"strconv"
	"time"

	"accomform_backend/internal/dto"
	"accomform_backend/internal/models"
	"accomform_backend/internal/repositories"
	"accomform_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the operator endpoints: listing, inspection,
// deletion and dashboard statistics.
type AdminHandler struct {
	*BaseHandler
	repo repositories.SubmissionRepository
}

func NewAdminHandler(base *BaseHandler, repo repositories.SubmissionRepository) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		repo:        repo,
	}
}

// List handles GET /admin/submissions with optional status, date range
// and pagination query params.
func (h *AdminHandler) List(c *gin.Context) {
	filter := repositories.SubmissionFilter{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "limit", 50),
	}

	if status := c.Query("status"); status != "" {
		s := models.SubmissionStatus(status)
		if !s.Valid() {
			h.HandleServiceError(c, apperrors.NewBadRequestError("unknown status filter: "+status))
			return
		}
		filter.Status = s
	}
	var ok bool
	if filter.DateFrom, ok = queryDate(c, "from"); !ok {
		h.HandleServiceError(c, apperrors.NewBadRequestError("from must be YYYY-MM-DD"))
		return
	}
	if filter.DateTo, ok = queryDate(c, "to"); !ok {
		h.HandleServiceError(c, apperrors.NewBadRequestError("to must be YYYY-MM-DD"))
		return
	}

	subs, total, err := h.repo.List(filter)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	summaries := make([]dto.SubmissionSummary, 0, len(subs))
	for _, sub := range subs {
		summaries = append(summaries, dto.SubmissionSummary{
			SubmissionID:  sub.ID,
			UserEmail:     sub.UserEmail,
			Status:        sub.Status,
			EmailVerified: sub.EmailVerified,
			PDFFileName:   sub.PDFFileName,
			SubmittedAt:   sub.SubmittedAt,
			CreatedAt:     sub.CreatedAt,
		})
	}

	limit := filter.PageSize
	if limit <= 0 {
		limit = 50
	}
	c.JSON(http.StatusOK, dto.ListSubmissionsResponse{
		Submissions: summaries,
		Total:       total,
		Page:        filter.Page,
		Limit:       limit,
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
	})
}

// Get handles GET /admin/submissions/:submissionId. Returns the full
// record including the log trail.
func (h *AdminHandler) Get(c *gin.Context) {
	sub, err := h.repo.FindByID(c.Param("submissionId"))
	if err != nil {
		if err == repositories.ErrSubmissionNotFound {
			h.HandleServiceError(c, apperrors.NewNotFoundError("submission not found"))
			return
		}
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	c.JSON(http.StatusOK, sub)
}

// Delete handles DELETE /admin/submissions/:submissionId. Logs cascade.
func (h *AdminHandler) Delete(c *gin.Context) {
	id := c.Param("submissionId")
	if err := h.repo.Delete(id); err != nil {
		if err == repositories.ErrSubmissionNotFound {
			h.HandleServiceError(c, apperrors.NewNotFoundError("submission not found"))
			return
		}
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "submission deleted", "submissionId": id})
}

// Statistics handles GET /admin/statistics?days=N.
func (h *AdminHandler) Statistics(c *gin.Context) {
	days := queryInt(c, "days", 30)
	if days <= 0 || days > 365 {
		h.HandleServiceError(c, apperrors.NewBadRequestError("days must be between 1 and 365"))
		return
	}

	stats, err := h.repo.GetStatistics(days)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	avg := float64(stats.TotalSubmissions) / float64(days)
	c.JSON(http.StatusOK, dto.StatisticsResponse{
		PeriodDays:       stats.PeriodDays,
		TotalSubmissions: stats.TotalSubmissions,
		TotalAllTime:     stats.TotalAllTime,
		StatusBreakdown:  stats.StatusBreakdown,
		DailySubmissions: stats.DailySubmissions,
		AveragePerDay:    avg,
	})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// queryDate parses an optional YYYY-MM-DD query param. The second
// return is false only when the param is present but malformed.
func queryDate(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
