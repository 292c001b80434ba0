package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Given: no config file on disk
	path := filepath.Join(t.TempDir(), "missing.yml")

	// When: loading
	cfg, err := Load(path)

	// Then: every default is applied
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, ":42069", cfg.HTTP.Addr)
	assert.Equal(t, "http://localhost:5173", cfg.HTTP.AllowedOrigin)
	assert.Equal(t, 60*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.InDelta(t, 0.4, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Gemini.Model)
	assert.Equal(t, "llama3.1", cfg.LLM.Ollama.Model)
	assert.Equal(t, "us-central1", cfg.LLM.Vertex.Location)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Vertex.Model)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
}

func TestLoad_FileAndEnv(t *testing.T) {
	// Given: a config file and an env override
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `log-level: debug
http:
  addr: ":8080"
llm:
  provider: ollama
  ollama:
    model: qwen2.5
redis:
  enabled: true
  ttl: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("HTTP_ADDR", ":9090")

	// When: loading
	cfg, err := Load(path)

	// Then: file values win over defaults and env wins over the file
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "qwen2.5", cfg.LLM.Ollama.Model)
	assert.Equal(t, "secret", cfg.LLM.Gemini.APIKey)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 60*time.Second, cfg.HTTP.RequestTimeout)
}
