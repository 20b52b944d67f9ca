package term

import (
	"io"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stdout
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestPrintGoesToStdout(t *testing.T) {
	saved := colored
	colored = true
	defer func() { colored = saved }()

	got := captureStdout(t, func() { Info("ready") })
	if got == "" {
		t.Fatalf("nothing on stdout")
	}
	if !strings.HasSuffix(got, NOCOLOR) {
		t.Fatalf("missing color reset: %q", got)
	}
	if !strings.Contains(got, "[INF]") || !strings.Contains(got, "ready") {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestPrintStripsColorsWhenPiped(t *testing.T) {
	saved := colored
	colored = false
	defer func() { colored = saved }()

	got := captureStdout(t, func() { Warn("careful") })
	if strings.Contains(got, "\033") {
		t.Fatalf("escape codes on a pipe: %q", got)
	}
	if got != "[WAR] careful\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}
