package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{name: "empty defaults to info", level: "", want: zapcore.InfoLevel},
		{name: "debug", level: "debug", want: zapcore.DebugLevel},
		{name: "upper case", level: "WARN", want: zapcore.WarnLevel},
		{name: "error", level: "error", want: zapcore.ErrorLevel},
		{name: "garbage", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLevel(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWithRotation_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := NewWithRotation(path, "info", Rotation{MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	require.NoError(t, err)

	log.Info("health check finished: checked=%d", 5)
	log.Debug("suppressed at info level")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "health check finished: checked=5")
	assert.NotContains(t, string(data), "suppressed")
}

func TestNewWithRotation_InvalidLevel(t *testing.T) {
	_, err := NewWithRotation("", "verbose", Rotation{})
	assert.Error(t, err)
}
