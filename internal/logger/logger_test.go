package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	if l := newWithWriter(&buf, "dev", "error"); l.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("dev should log debug, got %s", l.GetLevel())
	}
	if l := newWithWriter(&buf, "prod", "warn"); l.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected warn, got %s", l.GetLevel())
	}
	if l := newWithWriter(&buf, "prod", "bogus"); l.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %s", l.GetLevel())
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "prod", "info")
	l.Info().Str("component", "test").Msg("hello")
	l.Debug().Msg("hidden")
	out := buf.String()
	if !strings.Contains(out, `"message":"hello"`) || !strings.Contains(out, `"component":"test"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered at info level: %s", out)
	}
}
