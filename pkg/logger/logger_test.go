package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestInit_OnceUntilReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "info", Output: &first, Service: "expense-ledger"})
	Init(Options{Level: "debug", Output: &second})

	store := For("store")
	store.Info().Msg("hello")
	l := Get()
	l.Debug().Msg("filtered")

	if second.Len() != 0 {
		t.Fatalf("second Init should be ignored")
	}

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(first.Bytes()), &line); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", first.String(), err)
	}
	if line["service"] != "expense-ledger" || line["component"] != "store" {
		t.Errorf("unexpected fields: %v", line)
	}
}

func TestGet_BeforeInitIsNop(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	nop := Get()
	nop.Info().Msg("dropped")
}
