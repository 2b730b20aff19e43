package cmd

import (
	"testing"

	"github.com/rs/zerolog"
)

// TestNewLoggerLevel: the logger level follows the resolved debug setting,
// not the raw flag, so DEBUG=true in the environment lowers the level too.
func TestNewLoggerLevel(t *testing.T) {
	if got := newLogger(false).GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("level = %v, want info", got)
	}
	if got := newLogger(true).GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("level = %v, want debug", got)
	}
}

func TestSplitRiotID(t *testing.T) {
	name, tag, err := splitRiotID("Faker#KR1")
	if err != nil || name != "Faker" || tag != "KR1" {
		t.Fatalf("got %q %q %v", name, tag, err)
	}
	for _, bad := range []string{"Faker", "#KR1", "Faker#"} {
		if _, _, err := splitRiotID(bad); err == nil {
			t.Errorf("splitRiotID(%q) accepted", bad)
		}
	}
}
