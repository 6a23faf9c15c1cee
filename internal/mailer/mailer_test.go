package mailer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplates(t *testing.T) {
	t.Parallel()

	html, err := render(TemplateOrderConfirmation, map[string]any{
		"name":        "John",
		"orderNumber": "ORD-ABCDEF1234",
		"total":       180.0,
	})
	require.NoError(t, err)
	assert.Contains(t, html, "John")
	assert.Contains(t, html, "ORD-ABCDEF1234")
	assert.Contains(t, html, "180")

	html, err = render(TemplateEmailVerification, map[string]any{
		"name":             "Ada",
		"verificationLink": "https://shop.example/verify?token=x",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "https://shop.example/verify?token=x")

	_, err = render("newsletter", nil)
	assert.Error(t, err)
}

func TestOutcomes(t *testing.T) {
	t.Parallel()

	sent := SentOutcome()
	assert.True(t, sent.Sent)
	assert.Empty(t, sent.Reason)

	failed := FailedOutcome(errors.New("dial tcp: refused"))
	assert.False(t, failed.Sent)
	assert.Equal(t, "dial tcp: refused", failed.Reason)
}
