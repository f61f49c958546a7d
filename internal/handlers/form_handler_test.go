package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"accomform_backend/internal/handlers"
	"accomform_backend/internal/models"
	"accomform_backend/internal/repositories"
	"accomform_backend/internal/routes"
	"accomform_backend/internal/services"
	"accomform_backend/internal/testutil"
	"accomform_backend/internal/validator"
	"accomform_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// captureNotifier records tokens and uploads, never fails.
type captureNotifier struct {
	tokens  []string
	uploads []string
}

func (n *captureNotifier) SendVerificationCode(ctx context.Context, to, token string, expiryMinutes int) error {
	n.tokens = append(n.tokens, token)
	return nil
}

func (n *captureNotifier) UploadFormPdf(ctx context.Context, filename string, content []byte) (string, error) {
	n.uploads = append(n.uploads, filename)
	return "https://blobs.example.com/form-submissions/" + filename, nil
}

func (n *captureNotifier) SendConfirmation(ctx context.Context, form *models.AccommodationForm, submissionID, pdfName string, pdfContent []byte, submittedAt time.Time) error {
	return nil
}

func (n *captureNotifier) SendToCompany(ctx context.Context, form *models.AccommodationForm, submissionID, pdfName string, pdfContent []byte, blobURL string, submittedAt time.Time) error {
	return nil
}

type testServer struct {
	router   *gin.Engine
	notifier *captureNotifier
	repo     repositories.SubmissionRepository
}

func newTestServer(t *testing.T, captchaEnabled bool) *testServer {
	t.Helper()

	repo := repositories.NewSubmissionRepository(testutil.NewTestDB(t))
	notifier := &captureNotifier{}
	vld := validator.New()
	formService := services.NewFormService(
		repo,
		services.NewVerificationService(6, 15),
		services.NewPDFService(),
		notifier,
		vld,
		60,
	)
	captchaService := services.NewCaptchaService(5)

	base := handlers.NewBaseHandler(vld, &apperrors.GinErrorHandler{Debug: true})
	formHandler := handlers.NewFormHandler(base, formService, captchaService, captchaEnabled)
	adminHandler := handlers.NewAdminHandler(base, repo)

	router := gin.New()
	routes.Setup(router, formHandler, adminHandler)

	return &testServer{router: router, notifier: notifier, repo: repo}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	parsed := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed), "body: %s", rec.Body.String())
	}
	return rec, parsed
}

func TestFullWorkflowOverHTTP(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	rec, body := ts.do(t, "POST", "/form/initialize", gin.H{"email": "jane.smith@example.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	submissionID := body["submissionId"].(string)
	require.NotEmpty(t, submissionID)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, _ = ts.do(t, "POST", "/form/send-verification",
		gin.H{"submissionId": submissionID, "email": "jane.smith@example.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, ts.notifier.tokens, 1)

	rec, _ = ts.do(t, "POST", "/form/verify-email",
		gin.H{"submissionId": submissionID, "token": ts.notifier.tokens[0]}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, body = ts.do(t, "POST", "/form/submit",
		gin.H{"submissionId": submissionID, "form_data": testutil.ValidForm()}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, string(models.StatusCompleted), body["status"])

	rec, body = ts.do(t, "GET", "/form/"+submissionID+"/status", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	logs := body["logs"].([]interface{})
	assert.Len(t, logs, 7)
	assert.Contains(t, body["pdfFileName"], "Jane_Smith_Application_Form_")
}

func TestInitializeValidationFailure(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	rec, body := ts.do(t, "POST", "/form/initialize", gin.H{"email": "not-an-address"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, string(apperrors.CodeValidationFailed), body["code"])
	assert.NotEmpty(t, body["message"])
}

func TestVerifyWrongTokenReturnsContractBody(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	rec, body := ts.do(t, "POST", "/form/initialize", gin.H{"email": "jane@example.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	submissionID := body["submissionId"].(string)

	rec, _ = ts.do(t, "POST", "/form/send-verification",
		gin.H{"submissionId": submissionID, "email": "jane@example.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	wrong := "000000"
	if ts.notifier.tokens[0] == wrong {
		wrong = "000001"
	}
	rec, body = ts.do(t, "POST", "/form/verify-email",
		gin.H{"submissionId": submissionID, "token": wrong}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, string(apperrors.CodeVerificationMismatch), body["code"])
}

func TestSubmitDirectStoresCallerMetadata(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	rec, body := ts.do(t, "POST", "/form/submit-direct", testutil.ValidForm(), map[string]string{
		"User-Agent":      "integration-probe/1.2",
		"X-Forwarded-For": "203.0.113.9",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, string(models.StatusCompleted), body["status"])

	sub, err := ts.repo.FindByID(body["submissionId"].(string))
	require.NoError(t, err)
	meta := string(sub.RequestMetadata)
	assert.Contains(t, meta, "integration-probe/1.2")
	assert.Contains(t, meta, "203.0.113.9")
}

func TestSubmitWithoutSessionID(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	// The legacy bare-form shape carries no session, which /form/submit
	// requires.
	rec, body := ts.do(t, "POST", "/form/submit", testutil.ValidForm(), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestStatusUnknownSubmission(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	rec, body := ts.do(t, "GET", "/form/b2c7d8aa-0000-4000-8000-000000000000/status", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(apperrors.CodeNotFound), body["code"])
}

func TestCaptchaGate(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, true)

	rec, body := ts.do(t, "GET", "/form/captcha", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	challengeID := body["challengeId"].(string)
	question := body["question"].(string)

	// Wrong answer is rejected.
	rec, body = ts.do(t, "POST", "/form/initialize",
		gin.H{"email": "jane@example.com", "captchaId": challengeID, "captchaAnswer": "-99"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(apperrors.CodeCaptchaFailed), body["code"])

	// A fresh challenge with the right answer passes.
	rec, body = ts.do(t, "GET", "/form/captcha", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	challengeID = body["challengeId"].(string)
	question = body["question"].(string)

	rec, _ = ts.do(t, "POST", "/form/initialize",
		gin.H{"email": "jane@example.com", "captchaId": challengeID, "captchaAnswer": solveCaptcha(t, question)}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func solveCaptcha(t *testing.T, question string) string {
	t.Helper()
	var a, b int
	var op string
	_, err := fmt.Sscanf(question, "What is %d %s %d?", &a, &op, &b)
	require.NoError(t, err, "unexpected question format: %s", question)
	if op == "+" {
		return strconv.Itoa(a + b)
	}
	return strconv.Itoa(a - b)
}

func TestAdminListAndDelete(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	rec, body := ts.do(t, "POST", "/form/submit-direct", testutil.ValidForm(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	submissionID := body["submissionId"].(string)

	rec, body = ts.do(t, "GET", "/admin/submissions?status=completed", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total"])

	rec, _ = ts.do(t, "GET", "/admin/submissions/"+submissionID, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, "DELETE", "/admin/submissions/"+submissionID, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, "GET", "/admin/submissions/"+submissionID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminStatistics(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	rec, _ := ts.do(t, "POST", "/form/submit-direct", testutil.ValidForm(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, body := ts.do(t, "GET", "/admin/stats?days=7", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 7, body["periodDays"])
	assert.EqualValues(t, 1, body["totalSubmissions"])

	rec, _ = ts.do(t, "GET", "/admin/stats?days=0", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLargeBodiesAreHandled(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false)

	form := testutil.ValidForm()
	form.CurrentLivingArrangement.ReasonLeaving = strings.Repeat("very long reason ", 20)

	rec, _ := ts.do(t, "POST", "/form/submit-direct", form, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
