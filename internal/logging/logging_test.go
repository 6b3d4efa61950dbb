package logging

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	cases := []struct {
		level, format string
		debug         bool
	}{
		{level: "debug", format: "json", debug: true},
		{level: "warn", format: "console", debug: false},
		{level: "", format: "console", debug: false},
	}
	for _, tc := range cases {
		log, err := New(tc.level, tc.format)
		if err != nil {
			t.Fatalf("New(%q, %q): %v", tc.level, tc.format, err)
		}
		if got := log.Core().Enabled(zap.DebugLevel); got != tc.debug {
			t.Fatalf("New(%q, %q) debug enabled = %v, want %v", tc.level, tc.format, got, tc.debug)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("loud", "json"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
