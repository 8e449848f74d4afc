package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
)

// CaptureHandler is a slog.Handler that records log entries in memory as
// JSON lines. Tests use it to assert on warnings emitted for skipped
// geometry:
//
//	h := logging.NewCaptureHandler(slog.LevelWarn)
//	logging.SetLogger(slog.New(h))
//	defer logging.SetLogger(nil)
type CaptureHandler struct {
	level  slog.Leveler
	state  *captureState
	attrs  []slog.Attr
	groups []string
}

type captureState struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

type captureEntry struct {
	Level   string   `json:"level"`
	Message string   `json:"message"`
	Attrs   []string `json:"attrs,omitempty"`
}

// NewCaptureHandler creates a handler recording records at or above level.
// A nil level records everything.
func NewCaptureHandler(level slog.Leveler) *CaptureHandler {
	return &CaptureHandler{level: level, state: &captureState{}}
}

// Enabled implements slog.Handler.
func (h *CaptureHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	entry := captureEntry{Level: r.Level.String(), Message: r.Message}
	for _, a := range h.attrs {
		entry.Attrs = append(entry.Attrs, h.qualify(a))
	}
	r.Attrs(func(a slog.Attr) bool {
		entry.Attrs = append(entry.Attrs, h.qualify(a))
		return true
	})

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.buf.Write(data)
	h.state.buf.WriteByte('\n')
	return nil
}

func (h *CaptureHandler) qualify(a slog.Attr) string {
	if len(h.groups) == 0 {
		return a.String()
	}
	return strings.Join(h.groups, ".") + "." + a.String()
}

// WithAttrs implements slog.Handler.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &c
}

// WithGroup implements slog.Handler.
func (h *CaptureHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.groups = append(append([]string{}, h.groups...), name)
	return &c
}

// String returns everything captured so far.
func (h *CaptureHandler) String() string {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	return h.state.buf.String()
}

// Contains reports whether the captured output contains s.
func (h *CaptureHandler) Contains(s string) bool {
	return strings.Contains(h.String(), s)
}

// Count returns the number of records captured.
func (h *CaptureHandler) Count() int {
	return strings.Count(h.String(), "\n")
}

// Reset discards captured output.
func (h *CaptureHandler) Reset() {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.buf.Reset()
}
