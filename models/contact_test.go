package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSubmission_MissingFields(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		s := ContactSubmission{Name: "Alice", Email: "a@example.com", Message: "Hi"}
		assert.Empty(t, s.MissingFields())
		assert.True(t, s.IsComplete())
	})

	t.Run("Whitespace counts as missing", func(t *testing.T) {
		s := ContactSubmission{Name: "  ", Email: "a@example.com", Message: "\n\t"}
		assert.Equal(t, []string{"name", "message"}, s.MissingFields())
		assert.False(t, s.IsComplete())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, []string{"name", "email", "message"}, ContactSubmission{}.MissingFields())
	})
}

func TestMailResult_JSON(t *testing.T) {
	b, err := json.Marshal(MailSent())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"Email sent successfully"}`, string(b))

	b, err = json.Marshal(MailFailed())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Failed to send email"}`, string(b))

	b, err = json.Marshal(ServerError())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Server error"}`, string(b))
}
