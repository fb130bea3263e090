package downloader

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(&buf, "game.jar")

	bar.Start(2048)
	bar.Update(1024, 2048)
	bar.Finish(2048, 2048)

	out := buf.String()
	for _, want := range []string{"Downloading game.jar (2.0 KiB)...", "| 50% (1.0 KiB/2.0 KiB)", "| 100% (2.0 KiB/2.0 KiB)\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("%q is not in %q", want, out)
		}
	}
}

func TestBarUnknownSize(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(&buf, "game.jar")

	bar.Start(-1)
	bar.Update(512, -1)
	bar.Update(1024, 0)
	bar.Fail(errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "%") {
		t.Errorf("there should be no percentage without a size: %q", out)
	}
	if !strings.Contains(out, "unknown size") || !strings.Contains(out, "1.0 KiB downloaded") {
		t.Errorf("unexpected output %q", out)
	}
}
