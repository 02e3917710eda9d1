package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "litscope")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "papers")
	t.Setenv("SCOPUS_API_KEY", "scopus-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4242", cfg.HTTPPort)
	assert.Equal(t, "https://api.elsevier.com", cfg.ScopusBaseURL)
	assert.Equal(t, 200, cfg.PageSize)
	assert.Equal(t, 200*time.Millisecond, cfg.RequestDelay)
	assert.Equal(t, "gpt-4.1", cfg.OpenAIModel)
	assert.Equal(t, 3, cfg.ClassifierRetries)
	assert.Equal(t, defaultSearchQuery, cfg.SearchQuery)
	assert.Contains(t, cfg.SearchQuery, `TITLE-ABS-KEY( "policy implementation"`)
}

func TestLoadSearchQueryOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SEARCH_QUERY", "TITLE(custom)")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "TITLE(custom)", cfg.SearchQuery)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     5433,
		DBUser:     "u",
		DBPassword: "pw",
		DBName:     "papers",
	}
	assert.Equal(t, "host=db user=u password=pw dbname=papers port=5433 sslmode=disable", cfg.DSN())
}
