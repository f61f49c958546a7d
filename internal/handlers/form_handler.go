package handlers

import (
	"io"
	"net/http"

	"accomform_backend/internal/dto"
	"accomform_backend/internal/logger"
	"accomform_backend/internal/services"
	"accomform_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FormHandler exposes the applicant-facing workflow endpoints.
type FormHandler struct {
	*BaseHandler
	formService    *services.FormService
	captchaService *services.CaptchaService
	captchaEnabled bool
}

func NewFormHandler(base *BaseHandler, fs *services.FormService, cs *services.CaptchaService, captchaEnabled bool) *FormHandler {
	return &FormHandler{
		BaseHandler:    base,
		formService:    fs,
		captchaService: cs,
		captchaEnabled: captchaEnabled,
	}
}

// Initialize handles POST /form/initialize.
func (h *FormHandler) Initialize(c *gin.Context) {
	var req dto.InitializeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if h.captchaEnabled {
		if !h.captchaService.Verify(req.CaptchaID, req.CaptchaAnswer) {
			h.HandleServiceError(c, apperrors.New(apperrors.CodeCaptchaFailed, "form",
				"captcha verification failed", http.StatusBadRequest))
			return
		}
	}

	resp, err := h.formService.InitializeSession(c.Request.Context(), req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SendVerification handles POST /form/send-verification.
func (h *FormHandler) SendVerification(c *gin.Context) {
	var req dto.SendVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := logger.WithSubmissionID(c.Request.Context(), req.SubmissionID)
	resp, err := h.formService.SendVerification(ctx, req.SubmissionID, req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyEmail handles POST /form/verify-email.
func (h *FormHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := logger.WithSubmissionID(c.Request.Context(), req.SubmissionID)
	resp, err := h.formService.VerifyToken(ctx, req.SubmissionID, req.Token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Submit handles POST /form/submit. The body is read raw because two
// shapes are accepted: the wrapped {submissionId, form_data} request
// and the bare legacy form payload.
func (h *FormHandler) Submit(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("failed to read request body"))
		return
	}

	req, err := dto.ParseSubmitRequest(raw)
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError(err.Error()))
		return
	}
	if req.SubmissionID == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("submissionId is required"))
		return
	}

	req.Form.ClientIP = c.ClientIP()

	ctx := logger.WithSubmissionID(c.Request.Context(), req.SubmissionID)
	resp, err := h.formService.SubmitForm(ctx, req.SubmissionID, req.Form)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitDirect handles POST /form/submit-direct, the single-call path
// without a prior session. Caller metadata is captured server-side and
// stored with the submission.
func (h *FormHandler) SubmitDirect(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("failed to read request body"))
		return
	}

	req, err := dto.ParseSubmitRequest(raw)
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError(err.Error()))
		return
	}

	req.Form.ClientIP = c.ClientIP()
	metadata := map[string]string{
		"client_ip":       c.ClientIP(),
		"user_agent":      c.Request.UserAgent(),
		"referer":         c.Request.Referer(),
		"x_forwarded_for": c.GetHeader("X-Forwarded-For"),
	}

	resp, err := h.formService.SubmitFormDirect(c.Request.Context(), req.Form, metadata)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Status handles GET /form/:submissionId/status.
func (h *FormHandler) Status(c *gin.Context) {
	submissionID := c.Param("submissionId")
	if submissionID == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("submissionId is required"))
		return
	}

	ctx := logger.WithSubmissionID(c.Request.Context(), submissionID)
	resp, err := h.formService.GetStatus(ctx, submissionID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Captcha handles GET /form/captcha.
func (h *FormHandler) Captcha(c *gin.Context) {
	id, question := h.captchaService.Generate()
	c.JSON(http.StatusOK, dto.CaptchaResponse{
		ChallengeID: id,
		Question:    question,
	})
}
