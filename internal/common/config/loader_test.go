package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "")
	path := writeConfig(t, `
app:
  name: listing-assistant
workers:
  score-completeness:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 8000, cfg.APIs.GenAI.Timeout)
	assert.Equal(t, 1000, cfg.APIs.GenAI.MaxTokens)
	assert.Equal(t, 0.7, cfg.APIs.GenAI.Temperature)
	assert.Equal(t, LexiconSourceEmbedded, cfg.Lexicon.Source)
	assert.Equal(t, "json", cfg.Logging.Format)

	w := cfg.Workers["score-completeness"]
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
	assert.Equal(t, 3, w.MaxRetries)
}

func TestLoadFromFile_EnvExpansionAndOverride(t *testing.T) {
	t.Setenv("LISTING_TEST_BROKER", "zeebe:26500")
	t.Setenv("GENAI_API_KEY", "sk-test")
	path := writeConfig(t, `
camunda:
  enabled: true
  broker_address: ${LISTING_TEST_BROKER}
apis:
  genai:
    api_key: ""
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "sk-test", cfg.APIs.GenAI.APIKey)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"camunda without broker", "camunda:\n  enabled: true\n", "camunda.broker_address"},
		{"postgres without host", "database:\n  postgres:\n    enabled: true\n", "database.postgres.host"},
		{"redis lexicon without address", "lexicon:\n  source: redis\n", "database.redis.address"},
		{"file lexicon without path", "lexicon:\n  source: file\n", "lexicon.path"},
		{"unknown lexicon source", "lexicon:\n  source: s3\n", "lexicon.source"},
		{"temperature out of range", "apis:\n  genai:\n    temperature: 3.5\n", "temperature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWorkerHelpers(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"optimize-title": {Enabled: false, Timeout: 2000},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "optimize-title"))
	assert.True(t, IsWorkerEnabled(cfg, "generate-features"))
	assert.Equal(t, 2000, GetWorkerConfig(cfg, "optimize-title").Timeout)
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "unknown").Timeout)
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}

func TestPostgresDSN(t *testing.T) {
	pg := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "market", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=market sslmode=disable", pg.GetDSN())
}
