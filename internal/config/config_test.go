package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"APP_NAME":         "community",
		"APP_ENV":          "test",
		"HTTP_PORT":        "8080",
		"BACKEND_BASE_URL": "http://backend.local/",
		"SESSION_SECRET":   "s3cret",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, "http://backend.local", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "community_session", cfg.Session.CookieName)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, StatusResolutionBatch, cfg.Community.StatusResolution)
	assert.Equal(t, 300*time.Millisecond, cfg.Community.FilterDebounce)
	assert.Equal(t, 4, cfg.Community.StatusWorkers)
}

func TestFromEnv_MissingRequired(t *testing.T) {
	env := baseEnv()
	delete(env, "SESSION_SECRET")
	delete(env, "BACKEND_BASE_URL")

	_, err := FromEnv(envOf(env))
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
	assert.Contains(t, err.Error(), "BACKEND_BASE_URL")
}

func TestFromEnv_InvalidValues(t *testing.T) {
	env := baseEnv()
	env["FILTER_DEBOUNCE"] = "soon"
	env["STATUS_RESOLUTION"] = "magic"

	_, err := FromEnv(envOf(env))
	require.ErrorIs(t, err, errInvalidEnv)
	assert.Contains(t, err.Error(), "FILTER_DEBOUNCE")
	assert.Contains(t, err.Error(), "STATUS_RESOLUTION")
}

func TestFromEnv_Overrides(t *testing.T) {
	env := baseEnv()
	env["RELATIONSHIP_CACHE_TTL"] = "0s"
	env["STATUS_RESOLUTION"] = StatusResolutionPerCard
	env["COOKIE_SECURE"] = "TRUE"

	cfg, err := FromEnv(envOf(env))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Community.RelationshipCacheTTL)
	assert.Equal(t, StatusResolutionPerCard, cfg.Community.StatusResolution)
	assert.True(t, cfg.Session.CookieSecure)
}
