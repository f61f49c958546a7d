package repositories_test

import (
	"testing"
	"time"

	"accomform_backend/internal/models"
	"accomform_backend/internal/repositories"
	"accomform_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) repositories.SubmissionRepository {
	t.Helper()
	return repositories.NewSubmissionRepository(testutil.NewTestDB(t))
}

func createDraft(t *testing.T, repo repositories.SubmissionRepository, email string) *models.Submission {
	t.Helper()
	sub := &models.Submission{UserEmail: email, Status: models.StatusDraft}
	require.NoError(t, repo.CreateWithLog(sub, models.ActionSessionInitialized, "session initialized"))
	return sub
}

func TestCreateWithLogIsAtomic(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	sub := createDraft(t, repo, "jane@example.com")
	require.NotEmpty(t, sub.ID)

	loaded, err := repo.FindByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, loaded.Status)
	require.Len(t, loaded.Logs, 1)
	assert.Equal(t, models.ActionSessionInitialized, loaded.Logs[0].Action)
	assert.Equal(t, sub.ID, loaded.Logs[0].SubmissionID)
}

func TestFindByIDUnknown(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	_, err := repo.FindByID("b2c7d8aa-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, repositories.ErrSubmissionNotFound)
}

func TestTransitionWithLogEnforcesForwardChain(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	sub := createDraft(t, repo, "jane@example.com")

	require.NoError(t, repo.TransitionWithLog(sub.ID, models.StatusEmailSent, models.ActionEmailVerificationSent, "code sent"))

	// Going back is rejected and leaves no log behind.
	err := repo.TransitionWithLog(sub.ID, models.StatusDraft, models.ActionSessionInitialized, "rewind")
	assert.ErrorIs(t, err, repositories.ErrInvalidTransition)

	loaded, err := repo.FindByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEmailSent, loaded.Status)
	assert.Len(t, loaded.Logs, 2)
}

func TestUpdateFieldsLeavesStatusAlone(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	sub := createDraft(t, repo, "jane@example.com")

	require.NoError(t, repo.TransitionWithLog(sub.ID, models.StatusEmailSent, models.ActionEmailVerificationSent, "code sent"))

	// The held struct still says draft; the column write must not
	// carry that back into the row.
	require.NoError(t, repo.UpdateFields(sub.ID, map[string]interface{}{"pdf_file_name": "Jane_Smith.pdf"}))

	loaded, err := repo.FindByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEmailSent, loaded.Status)
	assert.Equal(t, "Jane_Smith.pdf", loaded.PDFFileName)
}

func TestUpdateFieldsUnknownSubmission(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	err := repo.UpdateFields("b2c7d8aa-0000-4000-8000-000000000000", map[string]interface{}{"pdf_file_name": "x.pdf"})
	assert.ErrorIs(t, err, repositories.ErrSubmissionNotFound)
}

func TestLogsAreOrderedByInsertion(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	sub := createDraft(t, repo, "jane@example.com")

	require.NoError(t, repo.AppendLog(sub.ID, models.ActionEmailVerificationSent, "first"))
	require.NoError(t, repo.AppendLog(sub.ID, models.ActionEmailVerificationSent, "second"))

	loaded, err := repo.FindByID(sub.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Logs, 3)
	assert.Equal(t, "first", loaded.Logs[1].Details)
	assert.Equal(t, "second", loaded.Logs[2].Details)
}

func TestListFiltersByStatus(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	createDraft(t, repo, "a@example.com")
	b := createDraft(t, repo, "b@example.com")
	require.NoError(t, repo.TransitionWithLog(b.ID, models.StatusEmailSent, models.ActionEmailVerificationSent, "code sent"))

	subs, total, err := repo.List(repositories.SubmissionFilter{Status: models.StatusDraft})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, subs, 1)
	assert.Equal(t, "a@example.com", subs[0].UserEmail)

	subs, total, err = repo.List(repositories.SubmissionFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, subs, 2)
}

func TestListPagination(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	for i := 0; i < 5; i++ {
		createDraft(t, repo, "bulk@example.com")
	}

	subs, total, err := repo.List(repositories.SubmissionFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, subs, 2)

	subs, _, err = repo.List(repositories.SubmissionFilter{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestDeleteCascadesLogs(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repositories.NewSubmissionRepository(db)
	sub := createDraft(t, repo, "jane@example.com")

	require.NoError(t, repo.Delete(sub.ID))

	_, err := repo.FindByID(sub.ID)
	assert.ErrorIs(t, err, repositories.ErrSubmissionNotFound)

	var logCount int64
	require.NoError(t, db.Model(&models.SubmissionLog{}).Where("submission_id = ?", sub.ID).Count(&logCount).Error)
	assert.Zero(t, logCount)

	assert.ErrorIs(t, repo.Delete(sub.ID), repositories.ErrSubmissionNotFound)
}

func TestGetStatistics(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	createDraft(t, repo, "a@example.com")
	b := createDraft(t, repo, "b@example.com")
	require.NoError(t, repo.TransitionWithLog(b.ID, models.StatusEmailSent, models.ActionEmailVerificationSent, "code sent"))

	stats, err := repo.GetStatistics(30)
	require.NoError(t, err)
	assert.Equal(t, 30, stats.PeriodDays)
	assert.EqualValues(t, 2, stats.TotalAllTime)
	assert.EqualValues(t, 2, stats.TotalSubmissions)
	assert.EqualValues(t, 1, stats.StatusBreakdown[string(models.StatusDraft)])
	assert.EqualValues(t, 1, stats.StatusBreakdown[string(models.StatusEmailSent)])

	today := time.Now().UTC().Format("2006-01-02")
	assert.EqualValues(t, 2, stats.DailySubmissions[today])
}
