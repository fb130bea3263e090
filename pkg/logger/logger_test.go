package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsole(&buf, false, "arch", true)

	log.Debug().Msg("hidden")
	log.Info().Msgf("[dl] saved %v", "game.jar")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug messages should be off: %q", out)
	}
	if !strings.Contains(out, "INF arch [dl] saved game.jar") {
		t.Errorf("unexpected line %q", out)
	}
}

func TestJson(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)
	if !log.IsDebug() {
		t.Errorf("should be in debug")
	}

	log.Extend(log.With().Str("op", "overview")).Debug().RawJSON("response", []byte(`{"a":1}`)).Msg("x")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not a json line %q: %v", buf.String(), err)
	}
	if line["op"] != "overview" || line["level"] != "debug" || line["message"] != "x" {
		t.Errorf("unexpected line %v", line)
	}
	if _, ok := line["response"].(map[string]any); !ok {
		t.Errorf("raw json should be embedded: %v", line)
	}
}

func TestNop(t *testing.T) {
	Nop().Error().Msg("nothing")
}
