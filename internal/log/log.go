// Package log builds the slog loggers used by the httpval command.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/mattn/go-isatty"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"
	slogmulti "github.com/samber/slog-multi"

	"github.com/shapestone/shape-httpval/pkg/http"
)

// Format selects a handler.
type Format string

const (
	FormatConsole Format = "console"
	FormatDev     Format = "dev"
	FormatJSON    Format = "json"
	FormatNone    Format = "none"
)

// Formats lists every accepted format name.
var Formats = []Format{FormatConsole, FormatDev, FormatJSON, FormatNone}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown log format %q; supported formats are console, dev, json, none", s)
}

// Options configures New.
type Options struct {
	Format    Format
	Level     slog.Leveler
	AddSource bool
	// NoColor disables ANSI colors in the console format. New also turns
	// colors off when the writer is not a terminal.
	NoColor bool
}

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(mt http.MediaType) slog.Value {
		return slog.StringValue(mt.String())
	}),
	slogformatter.FormatByType(func(a http.Accept) slog.Value {
		return slog.StringValue(a.String())
	}),
	slogformatter.FormatByType(func(u http.URI) slog.Value {
		return slog.GroupValue(
			slog.String("form", u.Form().String()),
			slog.String("text", u.String()),
		)
	}),
)

// untrace strips errtrace frames from error attributes so the error
// formatter sees the underlying error rather than its flattened trace.
var untrace = slogmulti.NewHandleInlineMiddleware(
	func(ctx context.Context, r slog.Record, next func(context.Context, slog.Record) error) error {
		out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
		r.Attrs(func(a slog.Attr) bool {
			if err, ok := a.Value.Any().(error); ok {
				a.Value = slog.AnyValue(unwrapTrace(err))
			}
			out.AddAttrs(a)
			return true
		})
		return next(ctx, out)
	},
)

func unwrapTrace(err error) error {
	for {
		if _, ok := err.(interface{ TracePC() uintptr }); !ok {
			return err
		}
		err = errors.Unwrap(err)
	}
}

// New returns a logger writing to w in the given format.
func New(w io.Writer, opts Options) *slog.Logger {
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	var h slog.Handler
	switch opts.Format {
	case FormatNone:
		return Noop
	case FormatDev:
		h = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: opts.AddSource,
				Level:     level,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		})
	case FormatJSON:
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: opts.AddSource,
			Level:     level,
		})
	default:
		h = console.NewHandler(w, &console.HandlerOptions{
			AddSource:  opts.AddSource,
			Level:      level,
			TimeFormat: time.RFC3339Nano,
			NoColor:    opts.NoColor || !IsTerminal(w),
		})
	}
	return slog.New(slogmulti.Pipe(untrace, newHandler).Handler(h))
}

// IsTerminal reports whether w is a terminal or a Cygwin/MSYS pty.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Noop is a logger that discards everything.
var Noop = slog.New(slog.DiscardHandler)
