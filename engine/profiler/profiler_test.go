package profiler

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func TestTickLogsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	current := time.Unix(0, 0)
	p := NewProfiler(
		WithLogger(log.New(&buf, "", 0)),
		WithInterval(time.Second),
		WithClock(func() time.Time { return current }),
	)
	p.AddProbe("controllers", func() string { return "12" })

	for range 9 {
		current = current.Add(100 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("must not log before the interval elapses")
		}
	}
	current = current.Add(100 * time.Millisecond)
	if !p.Tick() {
		t.Fatalf("expected a stats line once the interval elapsed")
	}

	out := buf.String()
	if !strings.Contains(out, "TPS: 10.00") {
		t.Fatalf("expected 10 ticks per second, got %q", out)
	}
	if !strings.Contains(out, "controllers: 12") {
		t.Fatalf("expected the probe in the stats line, got %q", out)
	}
}
