package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestInitLevels(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		logLevel string
		expected zerolog.Level
	}{
		{"prod default", false, "", zerolog.InfoLevel},
		{"dev default", true, "", zerolog.DebugLevel},
		{"env override", false, "warn", zerolog.WarnLevel},
		{"env override beats dev default", true, "error", zerolog.ErrorLevel},
		{"garbage env ignored", false, "loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			Init(tt.isDev)
			if got := Log.GetLevel(); got != tt.expected {
				t.Errorf("level = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsDev(t *testing.T) {
	tests := []struct {
		env      string
		expected bool
	}{
		{"", true},
		{"dev", true},
		{"development", true},
		{"production", false},
	}

	for _, tt := range tests {
		t.Setenv("ENV", tt.env)
		if got := IsDev(); got != tt.expected {
			t.Errorf("IsDev() with ENV=%q = %v, want %v", tt.env, got, tt.expected)
		}
	}
}
