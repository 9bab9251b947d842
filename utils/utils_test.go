package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestPacerNextWithinRange(t *testing.T) {
	p := NewPacer(3*time.Millisecond, 5*time.Millisecond)
	for i := 0; i < 200; i++ {
		d := p.Next()
		if d < p.Min || d > p.Max {
			t.Fatalf("Next() = %v outside [%v, %v]", d, p.Min, p.Max)
		}
	}
}

func TestPacerFixedRange(t *testing.T) {
	p := NewPacer(2*time.Millisecond, 2*time.Millisecond)
	if d := p.Next(); d != 2*time.Millisecond {
		t.Errorf("Next() = %v; want 2ms", d)
	}

	inverted := NewPacer(4*time.Millisecond, time.Millisecond)
	if inverted.Max != 4*time.Millisecond {
		t.Errorf("inverted range Max: got %v, want 4ms", inverted.Max)
	}
}

func TestPacerWaitSleeps(t *testing.T) {
	p := NewPacer(20*time.Millisecond, 30*time.Millisecond)

	start := time.Now()
	d, err := p.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < d {
		t.Errorf("Wait returned after %v, drawn pause was %v", elapsed, d)
	}
}

func TestPacerWaitCancelled(t *testing.T) {
	p := NewPacer(time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Wait(ctx); err == nil {
		t.Error("expected context error from cancelled Wait")
	}
}

func TestUserAgentPoolPick(t *testing.T) {
	agents := []string{"a", "b", "c"}
	pool := NewUserAgentPool(agents)

	seen := make(map[string]bool)
	for i := 0; i < 300; i++ {
		seen[pool.Pick()] = true
	}
	for _, a := range agents {
		if !seen[a] {
			t.Errorf("agent %q never picked in 300 draws", a)
		}
	}
}

func TestUserAgentPoolEmptyFallsBack(t *testing.T) {
	pool := NewUserAgentPool([]string{"", ""})
	if pool.Size() != 1 {
		t.Fatalf("Size: got %d, want 1", pool.Size())
	}
	if pool.Pick() == "" {
		t.Error("Pick returned empty user agent")
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithOptions(LoggerOptions{Writer: &buf, Level: "warn"})

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden 1") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestLoggerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithOptions(LoggerOptions{Writer: &buf, Level: "debug"}).With("run", "abc123")

	l.Debug("zone %s", "centro")

	out := buf.String()
	if !strings.Contains(out, "zone centro") || !strings.Contains(out, "run=abc123") {
		t.Errorf("unexpected log line: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug": "DEBUG",
		"WARN":  "WARN",
		"bogus": "INFO",
		"":      "INFO",
	}
	for in, want := range tests {
		if got := ParseLevel(in).String(); got != want {
			t.Errorf("ParseLevel(%q) = %s; want %s", in, got, want)
		}
	}
}
