package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

var levelNames = map[slog.Level]string{
	slog.LevelDebug: "DEBUG",
	slog.LevelInfo:  "INFO",
	slog.LevelWarn:  "WARN",
	slog.LevelError: "ERROR",
}

var levelColors = map[slog.Level]string{
	slog.LevelDebug: colorGray,
	slog.LevelInfo:  colorCyan,
	slog.LevelWarn:  colorYellow,
	slog.LevelError: colorRed,
}

// MavenHandler is a slog.Handler that formats logs in Maven-style:
// [LEVEL] [SYSTEM] [HH:MM:SS] message key=value key=value
//
// The "system" attribute is hoisted into the bracketed prefix instead of
// being printed as a key=value pair.
type MavenHandler struct {
	w         io.Writer
	level     slog.Level
	mu        *sync.Mutex
	system    string
	useColors bool
	attrs     []slog.Attr
}

// NewMavenHandler creates a new Maven-style handler. Colors are enabled
// only when the writer is a terminal.
func NewMavenHandler(w io.Writer, opts *slog.HandlerOptions) *MavenHandler {
	h := &MavenHandler{
		w:         w,
		level:     slog.LevelInfo,
		mu:        &sync.Mutex{},
		useColors: isTerminal(w),
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level.Level()
	}
	return h
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Enabled reports whether the handler handles records at the given level.
func (h *MavenHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes a log record
func (h *MavenHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	h.colored(&buf, levelColors[r.Level], "["+levelName(r.Level)+"]")
	if h.system != "" {
		buf.WriteString(" [" + h.system + "]")
	}
	if !r.Time.IsZero() {
		h.colored(&buf, colorGray, " ["+r.Time.Format("15:04:05")+"]")
	}
	buf.WriteString(" " + r.Message)

	for _, attr := range h.attrs {
		h.appendAttr(&buf, attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, a)
		return true
	})
	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write([]byte(buf.String()))
	return err
}

func (h *MavenHandler) colored(buf *strings.Builder, color, s string) {
	if h.useColors {
		buf.WriteString(color)
		buf.WriteString(s)
		buf.WriteString(colorReset)
		return
	}
	buf.WriteString(s)
}

// appendAttr appends a key=value pair, skipping the hoisted system attr
func (h *MavenHandler) appendAttr(buf *strings.Builder, a slog.Attr) {
	if a.Key == "system" {
		return
	}
	fmt.Fprintf(buf, " %s=%v", a.Key, a.Value.Any())
}

// WithAttrs returns a new handler with the given attributes added
func (h *MavenHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	for _, attr := range attrs {
		if attr.Key == "system" {
			clone.system = attr.Value.String()
		}
	}
	return &clone
}

// WithGroup returns the handler unchanged; grouped output is not needed
// for console logs.
func (h *MavenHandler) WithGroup(string) slog.Handler {
	return h
}

func levelName(level slog.Level) string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return level.String()
}
