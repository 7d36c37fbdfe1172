package dlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/context"
)

type color int

const (
	timeFormat = "[2006-01-02 15:04:05.000]"

	reset = "\033[0m"

	cyan         color = 36
	lightGray    color = 37
	lightRed     color = 91
	green        color = 92
	lightYellow  color = 93
	lightMagenta color = 95
	white        color = 97
)

func colorize(colorCode color, v string) string {
	return fmt.Sprintf("\033[%sm%s%s", strconv.Itoa(int(colorCode)), v, reset)
}

// PrettyHandler renders records as a single colored line followed by the
// attrs as indented JSON. The record is first run through an inner JSON
// handler so attr resolution (groups, WithAttrs) matches slog semantics.
type PrettyHandler struct {
	inner  slog.Handler
	buf    *bytes.Buffer
	mu     *sync.Mutex
	writer io.Writer
}

func NewPrettyHandler(writer io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	buf := &bytes.Buffer{}
	return &PrettyHandler{
		inner: slog.NewJSONHandler(buf, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: suppressDefaults(opts.ReplaceAttr),
		}),
		buf:    buf,
		mu:     &sync.Mutex{},
		writer: writer,
	}
}

func (h *PrettyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrettyHandler{inner: h.inner.WithAttrs(attrs), buf: h.buf, mu: h.mu, writer: h.writer}
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{inner: h.inner.WithGroup(name), buf: h.buf, mu: h.mu, writer: h.writer}
}

func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs, err := h.computeAttrs(ctx, r)
	if err != nil {
		return err
	}

	level := r.Level.String() + ":"
	switch {
	case r.Level <= slog.LevelDebug:
		level = colorize(lightGray, level)
	case r.Level <= slog.LevelInfo:
		level = colorize(cyan, level)
	case r.Level < slog.LevelError:
		level = colorize(lightYellow, level)
	case r.Level <= slog.LevelError+1:
		level = colorize(lightRed, level)
	default:
		level = colorize(lightMagenta, level)
	}

	var file string
	if source, ok := attrs["source"].(map[string]interface{}); ok {
		if line, ok2 := source["line"].(float64); ok2 {
			file = source["file"].(string) + ":" + strconv.Itoa(int(line))
		}
		delete(attrs, "source")
	}

	out := strings.Builder{}
	out.WriteString(colorize(lightGray, r.Time.Format(timeFormat)))
	out.WriteString(" ")
	out.WriteString(level)
	out.WriteString(" ")
	if len(file) > 0 {
		out.WriteString(file)
		out.WriteString(" ")
	}
	out.WriteString(colorize(white, r.Message))

	if len(attrs) > 0 {
		jsonBytes, err := json.MarshalIndent(attrs, "", "  ")
		if err != nil {
			return fmt.Errorf("error when marshaling attrs: %w", err)
		}
		out.WriteString(" ")
		out.WriteString(colorize(green, string(jsonBytes)))
	}

	_, err = io.WriteString(h.writer, out.String()+"\n")
	return err
}

func (h *PrettyHandler) computeAttrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.mu.Lock()
	defer func() {
		h.buf.Reset()
		h.mu.Unlock()
	}()
	if err := h.inner.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any
	if err := json.Unmarshal(h.buf.Bytes(), &attrs); err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}
	return attrs, nil
}

func suppressDefaults(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey ||
			a.Key == slog.LevelKey ||
			a.Key == slog.MessageKey {
			return slog.Attr{}
		}
		if next == nil {
			return a
		}
		return next(groups, a)
	}
}
