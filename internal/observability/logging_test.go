package observability

import (
	"context"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

type testHandler struct {
	enabled    bool
	handled    int
	lastRecord slog.Record
	attrs      []slog.Attr
}

func (h *testHandler) Enabled(context.Context, slog.Level) bool { return h.enabled }

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	h.handled++
	h.lastRecord = r
	return nil
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *testHandler) WithGroup(string) slog.Handler { return h }

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"WARN":  slog.LevelWarn,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q)=%v want=%v", in, got, want)
		}
	}
}

func TestTraceHandlerPassesThroughWithoutSpan(t *testing.T) {
	inner := &testHandler{enabled: true}
	h := &traceHandler{next: inner}

	r := slog.NewRecord(slog.Record{}.Time, slog.LevelInfo, "msg", 0)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if inner.handled != 1 {
		t.Fatalf("expected record handed to inner handler, got %d", inner.handled)
	}
	count := 0
	inner.lastRecord.Attrs(func(slog.Attr) bool { count++; return true })
	if count != 0 {
		t.Fatalf("expected no trace attrs without an active span, got %d", count)
	}
}

func TestTraceHandlerStampsActiveSpan(t *testing.T) {
	inner := &testHandler{enabled: true}
	h := &traceHandler{next: inner}

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		SpanID:  trace.SpanID{1, 2, 3, 4, 5, 6, 7, 8},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	r := slog.NewRecord(slog.Record{}.Time, slog.LevelInfo, "msg", 0)
	if err := h.Handle(ctx, r); err != nil {
		t.Fatalf("handle: %v", err)
	}

	found := map[string]bool{}
	inner.lastRecord.Attrs(func(a slog.Attr) bool {
		found[a.Key] = true
		return true
	})
	if !found["trace_id"] || !found["span_id"] {
		t.Fatalf("expected trace_id and span_id attrs, got %v", found)
	}
}
