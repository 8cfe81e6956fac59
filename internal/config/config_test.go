package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/matching"
	"github.com/jonathan/resume-analyzer/internal/scoring"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(10<<20), cfg.Limits.MaxUploadBytes)
	assert.Equal(t, scoring.DefaultParams(), cfg.ScoringParams())
	assert.Equal(t, matching.DefaultWeights(), cfg.MatchWeights())
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "analysis_jobs", cfg.Queue.Queue)
	assert.Equal(t, uint(3), cfg.Storage.MaxTries)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
server:
  port: 9090
  cors_origins: ["https://jobs.example.com"]
scoring:
  skills_weight: 0.5
  experience_weight: 0.3
  education_weight: 0.2
cache:
  ttl: 2m
catalog:
  path: jobs.yaml
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://jobs.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 2*time.Minute, cfg.CacheSettings().TTL)
	assert.Equal(t, "jobs.yaml", cfg.Catalog.Path)

	params := cfg.ScoringParams()
	assert.InDelta(t, 0.5, params.SkillsWeight, 1e-9)
	assert.NoError(t, params.Validate())
}

func TestLoad_FetchAllowLists(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
storage:
  allow_http: true
  allowed_hosts: ["files.example.com", ".cdn.example.com"]
  allowed_buckets: ["resumes"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Storage.AllowHTTP)
	opts := cfg.FetchOptions()
	assert.Equal(t, []string{"files.example.com", ".cdn.example.com"}, opts.AllowedHosts)
	assert.Equal(t, []string{"resumes"}, opts.AllowedBuckets)
	assert.False(t, opts.AllowPrivateNetworks)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeConfig(t, "config.json", `{"queue": {"workers": 8}, "log": {"json": true}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Queue.Workers)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("RESUME_SERVER_PORT", "7070")
	t.Setenv("RESUME_CATALOG_SQLITE_PATH", "/tmp/jobs.db")
	t.Setenv("RESUME_RATELIMIT_ANALYZE_PER_HOUR", "20")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/tmp/jobs.db", cfg.Catalog.SQLitePath)

	rl := cfg.RateLimiter()
	for _, ep := range rl.EndpointConfigs {
		if ep.Path == "/analyze" {
			assert.Equal(t, 20, ep.Limit)
			assert.Equal(t, time.Hour, ep.Window)
			assert.Equal(t, 10, ep.Burst)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "scoring weights",
			file:    "a.yaml",
			content: "scoring:\n  skills_weight: 0.9\n",
			wantErr: "scoring skills, experience and education weights must sum to 1",
		},
		{
			name:    "skill split",
			file:    "b.yaml",
			content: "scoring:\n  technical_weight: 0.5\n",
			wantErr: "technical_weight and soft_weight must sum to 1",
		},
		{
			name:    "match weights",
			file:    "c.yaml",
			content: "matching:\n  level_weight: 0.5\n",
			wantErr: "matching weights must sum to 1",
		},
		{
			name:    "port range",
			file:    "d.yaml",
			content: "server:\n  port: 70000\n",
			wantErr: "Config.Server.Port",
		},
		{
			name:    "malformed",
			file:    "e.yaml",
			content: "server: [",
			wantErr: "failed to read config file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Conversions(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Storage.S3Endpoint = "http://localhost:9000"
	cfg.Storage.S3PathStyle = true
	cfg.RateLimit.Whitelist = "127.0.0.1, 10.0.0.1"

	s3 := cfg.S3()
	assert.Equal(t, "http://localhost:9000", s3.Endpoint)
	assert.True(t, s3.UsePathStyle)

	opts := cfg.FetchOptions()
	assert.Equal(t, cfg.Limits.MaxUploadBytes, opts.MaxBytes)
	assert.Equal(t, uint(3), opts.MaxTries)
	assert.False(t, cfg.Storage.AllowHTTP)
	assert.False(t, opts.AllowPrivateNetworks)
	assert.Empty(t, opts.AllowedHosts)

	rl := cfg.RateLimiter()
	assert.True(t, rl.Whitelist["10.0.0.1"])
	assert.Equal(t, 1000, rl.DefaultLimit)
}
