package services_test

import (
	"fmt"
	"testing"

	"accomform_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solve extracts the answer from "What is a + b?" questions.
func solve(t *testing.T, question string) string {
	t.Helper()
	var a, b int
	var op string
	_, err := fmt.Sscanf(question, "What is %d %s %d?", &a, &op, &b)
	require.NoError(t, err, "unexpected question format: %s", question)
	if op == "+" {
		return fmt.Sprintf("%d", a+b)
	}
	return fmt.Sprintf("%d", a-b)
}

func TestCaptchaRoundTrip(t *testing.T) {
	t.Parallel()
	svc := services.NewCaptchaService(5)

	id, question := svc.Generate()
	require.NotEmpty(t, id)

	assert.True(t, svc.Verify(id, solve(t, question)))
}

func TestCaptchaIsSingleUse(t *testing.T) {
	t.Parallel()
	svc := services.NewCaptchaService(5)

	id, question := svc.Generate()
	answer := solve(t, question)
	require.True(t, svc.Verify(id, answer))

	// The challenge is consumed even on success.
	assert.False(t, svc.Verify(id, answer))
}

func TestCaptchaRejectsWrongOrUnknown(t *testing.T) {
	t.Parallel()
	svc := services.NewCaptchaService(5)

	id, _ := svc.Generate()
	assert.False(t, svc.Verify(id, "not a number"))

	// A failed attempt consumes the challenge too.
	assert.False(t, svc.Verify(id, "4"))

	assert.False(t, svc.Verify("no-such-challenge", "4"))
}
