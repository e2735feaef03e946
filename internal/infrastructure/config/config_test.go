package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.json", cfg.Storage.Path)
	assert.True(t, cfg.Storage.Strict)
	assert.Equal(t, 30*time.Second, cfg.Storage.FlushInterval)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.GetAddr())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.App.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_PATH", "/var/lib/staffroster/employees.json")
	t.Setenv("STORAGE_STRICT", "false")
	t.Setenv("STORAGE_FLUSH_INTERVAL", "5s")
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("APP_ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/staffroster/employees.json", cfg.Storage.Path)
	assert.False(t, cfg.Storage.Strict)
	assert.Equal(t, 5*time.Second, cfg.Storage.FlushInterval)
	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.False(t, cfg.App.IsDevelopment())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"SERVER_PORT": "70000"}},
		{name: "blank storage path", env: map[string]string{"STORAGE_PATH": "  "}},
		{name: "zero flush interval", env: map[string]string{"STORAGE_FLUSH_INTERVAL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
		})
	}
}
