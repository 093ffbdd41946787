package logger

import (
	"strings"
	"testing"

	"spendwise/internal/config"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New(config.LogConfig{Level: "debug"})
	if log.GetLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", log.GetLevel())
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	log := New(config.LogConfig{Level: "nonsense"})
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info fallback", log.GetLevel())
	}
}

func TestNewWithWriter(t *testing.T) {
	var buf strings.Builder
	log := NewWithWriter(&buf)

	log.Info().Msg("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("output %q does not contain the message", buf.String())
	}
}
