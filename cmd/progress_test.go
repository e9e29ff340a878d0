package cmd

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the printer goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestProgressPrinterLifecycle(t *testing.T) {
	out := &syncBuffer{}
	printer := newProgressPrinter(out, 0, "probe")
	if printer.total != 1 {
		t.Fatalf("expected total to be clamped to 1, got %d", printer.total)
	}

	printer.Start()
	printer.Increment(true, 0.5)
	printer.Increment(false, 1.0)
	time.Sleep(350 * time.Millisecond) // allow ticker to tick at least once
	printer.Stop()
	printer.Stop() // second stop is a no-op

	output := out.String()
	if !strings.Contains(output, "[probe] Progress: 2/2") {
		t.Fatalf("expected summary progress, got %q", output)
	}
	if !strings.Contains(output, "Pass:1") || !strings.Contains(output, "Fail:1") {
		t.Fatalf("expected Pass/Fail counts in output, got %q", output)
	}
	if !strings.Contains(output, "Avg:0.75s") {
		t.Fatalf("expected average duration in output, got %q", output)
	}
	if strings.Count(output, "\n") != 1 {
		t.Fatalf("expected a single trailing newline, got %q", output)
	}
}
