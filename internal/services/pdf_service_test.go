package services_test

import (
	"testing"
	"time"

	"accomform_backend/internal/services"
	"accomform_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameIsDeterministic(t *testing.T) {
	t.Parallel()
	svc := services.NewPDFService()
	form := testutil.ValidForm()
	at := testutil.FixedTime()

	first := svc.Filename(form, at)
	second := svc.Filename(form, at)
	assert.Equal(t, "Jane_Smith_Application_Form_150820261030.pdf", first)
	assert.Equal(t, first, second)

	// Changing either input changes the name.
	assert.NotEqual(t, first, svc.Filename(form, at.Add(time.Minute)))
	form.TenantDetails.FullName = "John Smith"
	assert.NotEqual(t, first, svc.Filename(form, at))
}

func TestFilenameCleansNameTokens(t *testing.T) {
	t.Parallel()
	svc := services.NewPDFService()
	at := testutil.FixedTime()

	form := testutil.ValidForm()
	form.TenantDetails.FullName = "Anne-Marie  O'Brien"
	assert.Equal(t, "AnneMarie_OBrien_Application_Form_150820261030.pdf", svc.Filename(form, at))

	form.TenantDetails.FullName = "Cher"
	assert.Equal(t, "Cher_Cher_Application_Form_150820261030.pdf", svc.Filename(form, at))

	form.TenantDetails.FullName = ""
	assert.Equal(t, "Unknown_Unknown_Application_Form_150820261030.pdf", svc.Filename(form, at))
}

func TestRenderProducesPdf(t *testing.T) {
	t.Parallel()
	svc := services.NewPDFService()

	content, err := svc.Render(testutil.ValidForm(), "b2c7d8aa-1111-4000-8000-000000000000", testutil.FixedTime())
	require.NoError(t, err)
	require.NotEmpty(t, content)
	assert.Equal(t, "%PDF", string(content[:4]))
}
