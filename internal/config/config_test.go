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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "devMode: true\nserver:\n  port: \"9000\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 1, cfg.Survey.ScaleMin)
	assert.Equal(t, 5, cfg.Survey.ScaleMax)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AnalysisTimeout())
	assert.False(t, cfg.AI.IsEnabled())
	assert.True(t, cfg.InsecureDefaults())
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("REDIS_URI", "redis://cache:6379")
	t.Setenv("STORAGE_DRIVER", "mongo")

	t.Setenv("DEV_MODE", "true")

	cfg, err := LoadFile(writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)

	assert.True(t, cfg.AI.IsEnabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "mongo", cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.DevMode)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "storage:\n  driver: postgres\n"},
		{"inverted scale", "survey:\n  scaleMin: 5\n  scaleMax: 1\n"},
		{"zero timeout", "ai:\n  timeoutMs: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, "devMode: true\n"+tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_DefaultCredentials(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "log:\n  level: info\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.adminPassword")

	_, err = LoadFile(writeConfig(t, "auth:\n  adminPassword: s3cret\n"))
	assert.Error(t, err, "default JWT secret is still rejected")

	cfg, err := LoadFile(writeConfig(t, "auth:\n  adminPassword: s3cret\n  jwtSecret: a-long-random-secret\n"))
	require.NoError(t, err)
	assert.False(t, cfg.DevMode)
	assert.False(t, cfg.InsecureDefaults())
}

func TestModelEndpoint(t *testing.T) {
	c := AIConfig{BaseURL: "https://example.test/models", Model: "m1"}
	assert.Equal(t, "https://example.test/models/m1:generateContent", c.ModelEndpoint())
}
