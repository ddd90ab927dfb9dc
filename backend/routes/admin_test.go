package routes_test

import (
	"encoding/json"
	"net/http/httptest"
	"ratemyschedule/backend/models"
	"ratemyschedule/backend/utils"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminMetrics(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jack")
	env.register(t, "kim")

	now := time.Now()
	env.insertSchedule(t, models.Schedule{
		Title: "old", CollegeSlug: "mit", Major: "CS",
		Reactions: models.Reactions{Up: 4, Down: 1}, CommentsCount: 2,
		CreatedAt: now.Add(-72 * time.Hour),
	})
	env.insertSchedule(t, models.Schedule{
		CollegeSlug: "mit", Major: "Math",
		Reactions: models.Reactions{Up: 1},
		CreatedAt: now.Add(-time.Hour),
	})
	env.insertSchedule(t, models.Schedule{
		Title: "fresh", CollegeSlug: "ucla", Major: "CS",
		CreatedAt: now.Add(-time.Minute),
	})
	gone := env.insertSchedule(t, models.Schedule{
		Title: "deleted", CollegeSlug: "ucla", Major: "Art",
		Reactions: models.Reactions{Up: 50},
		CreatedAt: now.Add(-time.Minute),
	})
	require.NoError(t, env.db.Delete(&gone).Error)
	env.report(t, models.TargetSchedule, gone.ID)

	resp, _ := env.request(t, "GET", "/api/admin/metrics", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body := env.request(t, "GET", "/api/admin/metrics", nil, env.adminToken(t))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-cache")

	totals := body["totals"].(map[string]interface{})
	assert.EqualValues(t, 2, totals["users"])
	assert.EqualValues(t, 3, totals["schedules"])
	assert.EqualValues(t, 1, totals["reportsOpen"])
	assert.EqualValues(t, 5, totals["reactionsUp"])
	assert.EqualValues(t, 1, totals["reactionsDown"])
	assert.EqualValues(t, 2, totals["comments"])
	assert.EqualValues(t, 2, totals["newSchedules24h"])

	colleges := body["topColleges"].([]interface{})
	require.Len(t, colleges, 2)
	assert.Equal(t, map[string]interface{}{"name": "mit", "count": 2.0}, colleges[0])
	majors := body["topMajors"].([]interface{})
	require.Len(t, majors, 2)
	assert.Equal(t, map[string]interface{}{"name": "CS", "count": 2.0}, majors[0])

	recent := body["recent"].([]interface{})
	require.Len(t, recent, 3)
	assert.Equal(t, "fresh", recent[0].(map[string]interface{})["title"])
	assert.Equal(t, "Untitled", recent[1].(map[string]interface{})["title"])

	reports := body["openReports"].([]interface{})
	require.Len(t, reports, 1)
	assert.Equal(t, gone.ID, reports[0].(map[string]interface{})["scheduleId"])

	server := body["server"].(map[string]interface{})
	assert.Equal(t, "development", server["env"])
	assert.NotEmpty(t, server["goVersion"])

	resp, _ = env.request(t, "GET", "/api/admin/dev-metrics", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminMetricsTieBreak(t *testing.T) {
	env := newTestEnv(t)
	for _, s := range []struct{ college, major string }{
		{"yale", "History"}, {"brown", "Art"}, {"yale", "Art"}, {"brown", "History"}, {"duke", "Biology"},
	} {
		env.insertSchedule(t, models.Schedule{CollegeSlug: s.college, Major: s.major, CreatedAt: time.Now()})
	}

	_, body := env.request(t, "GET", "/api/admin/dev-metrics", nil, "")
	assert.Equal(t, []interface{}{
		map[string]interface{}{"name": "brown", "count": 2.0},
		map[string]interface{}{"name": "yale", "count": 2.0},
		map[string]interface{}{"name": "duke", "count": 1.0},
	}, body["topColleges"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"name": "Art", "count": 2.0},
		map[string]interface{}{"name": "History", "count": 2.0},
		map[string]interface{}{"name": "Biology", "count": 1.0},
	}, body["topMajors"])
}

func TestAdminMetricsEmpty(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, "GET", "/api/admin/dev-metrics", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["totals"].(map[string]interface{})["reactionsUp"])
	assert.Empty(t, body["topColleges"])
	assert.Empty(t, body["recent"])
}

func TestPublicMetricsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	env := newTestEnv(t, withCache(utils.NewRedisCache(client)))
	env.register(t, "lee")
	id := env.createSchedule(t, "mit", "CS", models.LevelFreshman, "")
	env.request(t, "POST", "/api/schedules/"+id+"/react", map[string]string{"kind": "up"}, "")
	env.request(t, "POST", "/api/schedules/"+id+"/react", map[string]string{"kind": "down"}, "")

	resp, body := env.request(t, "GET", "/api/metrics", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["users"])
	assert.EqualValues(t, 1, body["posts"])
	assert.EqualValues(t, 2, body["impressions"])
	assert.EqualValues(t, len(models.DefaultColleges), body["colleges"])
	assert.True(t, mr.Exists("rms:metrics:public"))

	env.createSchedule(t, "mit", "CS", models.LevelFreshman, "")
	_, body = env.request(t, "GET", "/api/metrics", nil, "")
	assert.EqualValues(t, 1, body["posts"])

	mr.FastForward(2 * time.Minute)
	_, body = env.request(t, "GET", "/api/metrics", nil, "")
	assert.EqualValues(t, 2, body["posts"])
}

func TestColleges(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(httptest.NewRequest("GET", "/api/colleges", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var colleges []models.College
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&colleges))
	require.Len(t, colleges, len(models.DefaultColleges))
	assert.True(t, sort.SliceIsSorted(colleges, func(i, j int) bool {
		return colleges[i].Name < colleges[j].Name
	}))
}
