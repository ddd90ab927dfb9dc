package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ADMIN_HANDLES", " alice, Bob ,,")
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, []string{"alice", "Bob"}, cfg.AdminHandles)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "local", cfg.UploadBackend)
	assert.False(t, cfg.IsProduction())
}

func TestIsAdminHandle(t *testing.T) {
	cfg := &Config{AdminHandles: []string{"Alice"}}
	assert.True(t, cfg.IsAdminHandle("alice"))
	assert.False(t, cfg.IsAdminHandle("mallory"))
}

func TestSMTPConfigured(t *testing.T) {
	cfg := &Config{SMTPHost: "smtp.example.com", SMTPUser: "u", SMTPPass: "p"}
	assert.False(t, cfg.SMTPConfigured())

	cfg.ContactInbox = "inbox@example.com"
	assert.True(t, cfg.SMTPConfigured())
}
