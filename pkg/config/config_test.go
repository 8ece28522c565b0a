package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("TEST_AGENT", "agent-from-env")
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

fetch:
  timeout: 10s
  user_agent: ${TEST_AGENT}
  max_redirects: 3

backoff:
  max_attempts: 5
  base_delay: 2s
  max_delay: 30s
  jitter: 0.2

queue:
  workers: 8
  time_limit: 5m

schedule:
  enabled: false

sanitizer:
  allowed_tags: [p, b]
  allowed_attributes:
    a: [href]
  allowed_styles: [color]
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, "agent-from-env", cfg.Fetch.UserAgent)
		assert.Equal(t, 3, cfg.Fetch.MaxRedirects)
		assert.Equal(t, 5, cfg.Backoff.MaxAttempts)
		assert.Equal(t, 2*time.Second, cfg.Backoff.BaseDelay)
		assert.Equal(t, 30*time.Second, cfg.Backoff.MaxDelay)
		assert.InEpsilon(t, 0.2, cfg.Backoff.Jitter, 0.001)
		assert.Equal(t, 8, cfg.Queue.Workers)
		assert.Equal(t, 5*time.Minute, cfg.Queue.TimeLimit)
		assert.False(t, cfg.Schedule.Enabled)
		assert.Equal(t, []string{"p", "b"}, cfg.Sanitizer.AllowedTags)
		assert.Equal(t, map[string][]string{"a": {"href"}}, cfg.Sanitizer.AllowedAttributes)
		assert.Equal(t, []string{"color"}, cfg.Sanitizer.AllowedStyles)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8081\"\n"))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		// check server defaults
		assert.Equal(t, ":8081", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)

		// check engine defaults
		assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, 1, cfg.Fetch.MaxRedirects)
		assert.Equal(t, 3, cfg.Backoff.MaxAttempts)
		assert.Equal(t, time.Second, cfg.Backoff.BaseDelay)
		assert.Equal(t, time.Minute, cfg.Backoff.MaxDelay)
		assert.Equal(t, 5, cfg.Queue.Workers)
		assert.Equal(t, 3, cfg.Queue.MaxRetries)
		assert.Equal(t, 24*time.Hour, cfg.Queue.AgeLimit)
		assert.True(t, cfg.Schedule.Enabled)
		assert.Equal(t, 30*time.Minute, cfg.Schedule.UpdateInterval)

		// check sanitizer defaults
		assert.Contains(t, cfg.Sanitizer.AllowedTags, "blockquote")
		assert.NotContains(t, cfg.Sanitizer.AllowedTags, "script")
		assert.Equal(t, []string{"href", "title"}, cfg.Sanitizer.AllowedAttributes["a"])
		assert.Equal(t, []string{"lang", "dir"}, cfg.Sanitizer.AllowedAttributes["*"])
		assert.Empty(t, cfg.Sanitizer.AllowedStyles)
	})

	t.Run("explicit zero redirects and retries", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "fetch:\n  max_redirects: 0\nqueue:\n  max_retries: 0\n"))
		require.NoError(t, err)
		assert.Zero(t, cfg.Fetch.MaxRedirects, "redirects disabled")
		assert.Zero(t, cfg.Queue.MaxRetries, "retries disabled")
		assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, 5, cfg.Queue.Workers)
	})

	t.Run("missing keys in present sections get defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "fetch:\n  timeout: 5s\nqueue:\n  workers: 2\n"))
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.Fetch.MaxRedirects)
		assert.Equal(t, 3, cfg.Queue.MaxRetries)
		assert.Equal(t, 2, cfg.Queue.Workers)

		def := Default()
		assert.Equal(t, 1, def.Fetch.MaxRedirects)
		assert.Equal(t, 3, def.Queue.MaxRetries)
	})

	t.Run("defaults are not shared", func(t *testing.T) {
		c1, c2 := Default(), Default()
		c1.Sanitizer.AllowedAttributes["a"][0] = "changed"
		c1.Sanitizer.AllowedTags[0] = "changed"
		assert.Equal(t, "href", c2.Sanitizer.AllowedAttributes["a"][0])
		assert.Equal(t, "a", c2.Sanitizer.AllowedTags[0])
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "backoff:\n  base_delay: 10s\n  max_delay: 1s\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "validate config")
	})
}

func TestValidate(t *testing.T) {
	tbl := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "defaults valid", modify: func(*Config) {}},
		{name: "short server timeout", modify: func(c *Config) { c.Server.Timeout = time.Millisecond },
			errMsg: "server timeout"},
		{name: "short fetch timeout", modify: func(c *Config) { c.Fetch.Timeout = time.Millisecond },
			errMsg: "fetch timeout"},
		{name: "negative redirects", modify: func(c *Config) { c.Fetch.MaxRedirects = -1 }, errMsg: "max_redirects"},
		{name: "no domain concurrency", modify: func(c *Config) { c.Fetch.PerDomainConcurrency = 0 },
			errMsg: "per_domain_concurrency"},
		{name: "zero attempts", modify: func(c *Config) { c.Backoff.MaxAttempts = 0 }, errMsg: "max_attempts"},
		{name: "max delay below base", modify: func(c *Config) { c.Backoff.MaxDelay = c.Backoff.BaseDelay / 2 },
			errMsg: "max_delay"},
		{name: "jitter too big", modify: func(c *Config) { c.Backoff.Jitter = 1 }, errMsg: "jitter"},
		{name: "no workers", modify: func(c *Config) { c.Queue.Workers = 0 }, errMsg: "queue.workers"},
		{name: "negative retries", modify: func(c *Config) { c.Queue.MaxRetries = -1 }, errMsg: "max_retries"},
		{name: "short update interval", modify: func(c *Config) { c.Schedule.UpdateInterval = time.Second },
			errMsg: "update_interval"},
		{name: "short update interval, schedule off", modify: func(c *Config) {
			c.Schedule.Enabled = false
			c.Schedule.UpdateInterval = time.Second
		}},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := validate(cfg)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := Default()
	cfg.Server.Listen = ":9090"
	cfg.Server.Timeout = 45 * time.Second

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
}
