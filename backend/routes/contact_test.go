package routes_test

import (
	"errors"
	"ratemyschedule/backend/models"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactPayload() map[string]string {
	return map[string]string{
		"name":    "Mo",
		"email":   "mo@example.com",
		"topic":   "Bug",
		"message": "The feed will not load for me",
	}
}

func TestContactWithoutSMTP(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, "POST", "/api/contact", contactPayload(), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, false, body["sent"])
	assert.NotEmpty(t, body["note"])

	var stored models.ContactMessage
	require.NoError(t, env.db.First(&stored).Error)
	assert.Equal(t, "mo@example.com", stored.Email)
	assert.False(t, stored.Sent)
}

func TestContactSendsMail(t *testing.T) {
	mailer := &sentMail{}
	env := newTestEnv(t, withMailer(mailer))

	resp, body := env.request(t, "POST", "/api/contact", contactPayload(), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["sent"])

	require.Len(t, mailer.mails, 1)
	assert.Equal(t, "mo@example.com", mailer.mails[0].ReplyTo)
	assert.Contains(t, mailer.mails[0].Subject, "Bug")
	assert.Contains(t, mailer.mails[0].Body, "The feed will not load")

	var stored models.ContactMessage
	require.NoError(t, env.db.First(&stored).Error)
	assert.True(t, stored.Sent)
}

func TestContactMailFailure(t *testing.T) {
	env := newTestEnv(t, withMailer(&sentMail{err: errors.New("connection refused")}))

	resp, body := env.request(t, "POST", "/api/contact", contactPayload(), "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "failed to send", body["error"])
}

func TestContactValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, "POST", "/api/contact", map[string]string{
		"name": "", "email": "not-an-email", "topic": "Bug", "message": "hey",
	}, "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	details := body["details"].(map[string]interface{})
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "message")
}

func TestContactRateLimit(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 6; i++ {
		resp, _ := env.request(t, "POST", "/api/contact", contactPayload(), "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, _ := env.request(t, "POST", "/api/contact", contactPayload(), "")
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
