package utils

import (
	"context"
	"math/rand"
	"net/http/httptest"
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/models"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	token, err := GenerateJWTToken("user-1", models.RoleAdmin, cfg)
	require.NoError(t, err)

	claims, err := ParseToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = ParseToken(token, &config.Config{JWTSecret: "other"})
	assert.Error(t, err)
}

func TestExtractClaimsFromToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}
	token, err := GenerateJWTToken("user-2", models.RoleUser, cfg)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		claims, err := ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(claims.UserID)
	})

	for _, header := range []string{"Bearer " + token, token} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestScheduleParser(t *testing.T) {
	parser := NewScheduleParser(rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		parsed := parser.Parse()
		assert.Equal(t, "Fall 2024", parsed.Term)
		assert.GreaterOrEqual(t, len(parsed.Events), 3)
		assert.LessOrEqual(t, len(parsed.Events), 5)

		seen := make(map[string]bool)
		for j, e := range parsed.Events {
			assert.False(t, seen[e.Title], "duplicate course %s", e.Title)
			seen[e.Title] = true
			if j > 0 {
				assert.LessOrEqual(t, parsed.Events[j-1].DayOfWeek, e.DayOfWeek)
			}
		}
	}
}

type eventInput struct {
	Title     string `json:"title" validate:"required"`
	DayOfWeek int    `json:"day_of_week" validate:"min=1,max=7"`
	StartTime string `json:"start_time" validate:"clock"`
}

type scheduleInput struct {
	Term   string       `json:"term" validate:"notblank"`
	Level  string       `json:"level" validate:"oneof=freshman senior"`
	Events []eventInput `json:"events" validate:"required,min=1,dive"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(scheduleInput{
		Term:   "Fall 2024",
		Level:  "senior",
		Events: []eventInput{{Title: "Calc", DayOfWeek: 2, StartTime: "09:00"}},
	}))

	errs := ValidateStruct(scheduleInput{
		Term:   "  ",
		Level:  "grad",
		Events: []eventInput{{DayOfWeek: 8, StartTime: "9am"}},
	})
	assert.Equal(t, "is required", errs["term"])
	assert.Contains(t, errs["level"], "must be one of")
	assert.Equal(t, "is required", errs["events[0].title"])
	assert.Equal(t, "must be at most 7", errs["events[0].day_of_week"])
	assert.Equal(t, "must be HH:MM", errs["events[0].start_time"])
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCache(client)
	ctx := context.Background()

	var got map[string]int
	ok, err := cache.Get(ctx, "metrics", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "metrics", map[string]int{"posts": 3}, time.Minute))
	ok, err = cache.Get(ctx, "metrics", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, got["posts"])

	mr.FastForward(2 * time.Minute)
	ok, err = cache.Get(ctx, "metrics", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "colleges", []string{"asu"}, time.Minute))
	require.NoError(t, cache.Delete(ctx, "colleges"))
	assert.False(t, mr.Exists("rms:colleges"))
}

func TestConnectRedisDisabled(t *testing.T) {
	client, err := ConnectRedis(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewMailerRequiresFullConfig(t *testing.T) {
	assert.Nil(t, NewMailer(&config.Config{SMTPHost: "smtp.example.com"}))

	m := NewMailer(&config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUser:     "bot@example.com",
		SMTPPass:     "secret",
		ContactInbox: "inbox@example.com",
	})
	require.NotNil(t, m)

	msg := string(m.(*SMTPMailer).message(Mail{
		ReplyTo: "sam@example.com",
		Subject: "[contact] bug\r\nBcc: x@example.com",
		Body:    "hello",
	}))
	assert.Contains(t, msg, "To: inbox@example.com\r\n")
	assert.Contains(t, msg, "Subject: [contact] bug  Bcc: x@example.com\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nhello"))
}
