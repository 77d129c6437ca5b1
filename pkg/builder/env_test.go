package builder

import (
	"testing"
	"time"
)

func TestEnvOr(t *testing.T) {
	const key = "PULSESCOPE_TEST_ENV_OR"
	t.Setenv(key, "")
	if got := EnvOr(key, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	t.Setenv(key, `"  value  "`)
	if got := EnvOr(key, "fallback"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestEnvIntOr(t *testing.T) {
	const key = "PULSESCOPE_TEST_ENV_INT"
	t.Setenv(key, "")
	if got := EnvIntOr(key, 7); got != 7 {
		t.Fatalf("expected default int, got %d", got)
	}

	t.Setenv(key, "12")
	if got := EnvIntOr(key, 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}

	t.Setenv(key, "not-int")
	if got := EnvIntOr(key, 7); got != 7 {
		t.Fatalf("expected default on bad int, got %d", got)
	}
}

func TestEnvDurationOr(t *testing.T) {
	const key = "PULSESCOPE_TEST_ENV_DURATION"
	t.Setenv(key, "250ms")
	if got := EnvDurationOr(key, time.Second); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", got)
	}

	t.Setenv(key, "soon")
	if got := EnvDurationOr(key, time.Second); got != time.Second {
		t.Fatalf("expected default on bad duration, got %v", got)
	}
}
