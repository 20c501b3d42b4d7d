package mandel

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestSilentHandler_Enabled(t *testing.T) {
	h := silent{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("silent.Enabled(%v) = true, want false", level)
		}
	}
}

func TestSilentHandler_WithAttrsAndGroup(t *testing.T) {
	h := silent{}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("key", "val")}).(silent); !ok {
		t.Error("silent.WithAttrs() did not return silent")
	}
	if _, ok := h.WithGroup("group").(silent); !ok {
		t.Error("silent.WithGroup() did not return silent")
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("silent.Handle() = %v, want nil", err)
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger_CapturesRender(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var mu sync.Mutex
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&lockedWriter{mu: &mu, w: &buf}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	cfg := Config{Dimension: 4, Engines: 2, TopLeftX: -2, TopLeftY: -2, Span: 4}
	if _, err := Render(context.Background(), cfg, NewImageSink(4, 4)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	mu.Lock()
	out := buf.String()
	mu.Unlock()
	for _, want := range []string{"render started", "row written", "render finished", "engine pool started"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSetLogger_RenderFileReportsPath(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var mu sync.Mutex
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&lockedWriter{mu: &mu, w: &buf}, nil)))

	path := filepath.Join(t.TempDir(), "logged.bmp")
	cfg := Config{Dimension: 3, Engines: 1, TopLeftX: -2, TopLeftY: -1.5, Span: 3}
	if _, err := RenderFile(context.Background(), cfg, path); err != nil {
		t.Fatalf("RenderFile() error = %v", err)
	}

	mu.Lock()
	out := buf.String()
	mu.Unlock()
	if !strings.Contains(out, "bitmap written") || !strings.Contains(out, "path="+path) {
		t.Errorf("log output missing committed path %q:\n%s", path, out)
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	SetLogger(nil)

	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestSetLoggerConcurrent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
			} else {
				SetLogger(nil)
			}
		}()
		go func() {
			defer wg.Done()
			_ = Logger()
		}()
	}
	wg.Wait()
}

// lockedWriter serializes writes from concurrent log calls.
type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
