package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// prettyHandler renders one human-readable line per record for
// development runs. Production stays on the JSON handler.
type prettyHandler struct {
	w     io.Writer
	level slog.Leveler
	color bool

	attrs  []slog.Attr
	groups []string

	mu *sync.Mutex
}

func newPrettyHandler(w io.Writer, level slog.Leveler, color bool) *prettyHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &prettyHandler{w: w, level: level, color: color, mu: &sync.Mutex{}}
}

func (h *prettyHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	for _, a := range attrs {
		c.attrs = append(c.attrs, h.qualify(a))
	}
	return c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.groups = append(c.groups, name)
	return c
}

func (h *prettyHandler) clone() *prettyHandler {
	return &prettyHandler{
		w:      h.w,
		level:  h.level,
		color:  h.color,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
		mu:     h.mu,
	}
}

func (h *prettyHandler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	a.Key = strings.Join(h.groups, ".") + "." + a.Key
	return a
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		b.WriteString(h.paint(ansiDim, r.Time.Format("15:04:05.000")))
		b.WriteByte(' ')
	}
	b.WriteString(h.levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		h.appendAttr(&b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, h.qualify(a))
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *prettyHandler) levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return h.paint(ansiRed, "ERROR")
	case l >= slog.LevelWarn:
		return h.paint(ansiYellow, "WARN ")
	case l >= slog.LevelInfo:
		return h.paint(ansiGreen, "INFO ")
	default:
		return h.paint(ansiCyan, "DEBUG")
	}
}

func (h *prettyHandler) appendAttr(b *strings.Builder, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			if a.Key != "" {
				ga.Key = a.Key + "." + ga.Key
			}
			h.appendAttr(b, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(h.paint(ansiDim, a.Key+"="))
	b.WriteString(h.formatValue(a))
}

func (h *prettyHandler) formatValue(a slog.Attr) string {
	s := a.Value.String()
	if a.Key == "err" || a.Key == "error" {
		return h.paint(ansiRed, quoteIfNeeded(s))
	}
	if a.Key == "status" {
		if code, err := strconv.Atoi(s); err == nil {
			return h.statusTag(code)
		}
	}
	return quoteIfNeeded(s)
}

func (h *prettyHandler) statusTag(code int) string {
	s := strconv.Itoa(code)
	switch {
	case code >= 500:
		return h.paint(ansiRed, s)
	case code >= 400:
		return h.paint(ansiYellow, s)
	default:
		return h.paint(ansiGreen, s)
	}
}

func (h *prettyHandler) paint(color, s string) string {
	if !h.color {
		return s
	}
	return color + s + ansiReset
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
