package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer keeps the spinner goroutine and the test from racing on
// the captured output.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStatusWriterRendersAndStops(t *testing.T) {
	buf := &syncBuffer{}
	sw := NewStatusWriter(buf)
	sw.Update("resolving tailwindcss latest")

	time.Sleep(250 * time.Millisecond)
	sw.StopWith("tailwindcss ready")

	out := buf.String()
	if !strings.Contains(out, "resolving tailwindcss latest") {
		t.Fatalf("expected status message in output: %q", out)
	}
	if !strings.Contains(out, "tailwindcss ready (") {
		t.Fatalf("expected final message with elapsed time: %q", out)
	}
	if !strings.Contains(out, "\r\033[K") {
		t.Fatalf("expected line rewrites in output: %q", out)
	}
}

func TestStatusWriterStopOnce(t *testing.T) {
	buf := &syncBuffer{}
	sw := NewStatusWriter(buf)

	sw.Stop()
	first := buf.String()

	sw.Stop()
	sw.StopWith("late")
	if buf.String() != first {
		t.Fatalf("stopped writer must not print again, got %q then %q", first, buf.String())
	}

	buf = &syncBuffer{}
	sw = NewStatusWriter(buf)
	sw.StopWith("tailwindcss ready")
	final := buf.String()
	sw.Stop()
	if buf.String() != final {
		t.Fatalf("stop after stop-with must not print, got %q then %q", final, buf.String())
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "500ms"},
		{1500 * time.Millisecond, "1.5s"},
		{15 * time.Second, "15s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tc := range cases {
		if got := formatElapsed(tc.d); got != tc.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestDetectModeFallsBackToPlain(t *testing.T) {
	if DetectMode(&bytes.Buffer{}, false) != ModePlain {
		t.Fatal("non-file writer should render plain")
	}
	if DetectMode(os.Stderr, true) != ModePlain {
		t.Fatal("disabled progress should render plain")
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()
	if DetectMode(f, false) != ModePlain {
		t.Fatal("regular file should render plain")
	}
}
