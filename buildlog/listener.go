package buildlog

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/acarl005/stripansi"
	"github.com/rs/zerolog"
)

// Listener receives everything a build step reports.
type Listener interface {
	io.Writer
	// Fatal records a fatal entry. It does not stop the build; the step
	// reports failure through its own return value.
	Fatal(msg string, err error)
	// Warn records a warning entry.
	Warn(msg string)
}

// Format selects how fatal and warning entries are rendered.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Console is a Listener over an io.Writer. It is safe for concurrent use, so
// stdout and stderr of a child can share it.
type Console struct {
	mu        sync.Mutex
	out       io.Writer
	log       zerolog.Logger
	fatals    atomic.Int64
	stripANSI bool
}

var _ Listener = (*Console)(nil)

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithStripANSI removes ANSI escape sequences from process output. A
// sequence split across two writes is passed through.
func WithStripANSI() ConsoleOption {
	return func(c *Console) { c.stripANSI = true }
}

// NewConsole returns a Console writing to out.
func NewConsole(out io.Writer, format Format, opts ...ConsoleOption) *Console {
	c := &Console{out: out}
	for _, opt := range opts {
		opt(c)
	}
	w := &lockedWriter{c: c}

	switch format {
	case FormatJSON:
		c.log = zerolog.New(w).With().Timestamp().Logger()
	default:
		c.log = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: "15:04:05",
			FormatLevel: func(i interface{}) string {
				if s, ok := i.(string); ok {
					return strings.ToUpper(s) + ":"
				}
				return "???:"
			},
		}).With().Timestamp().Logger()
	}
	return c
}

// Write passes process output through, unchanged unless ANSI stripping is on.
func (c *Console) Write(p []byte) (int, error) {
	if !c.stripANSI {
		return c.write(p)
	}
	if _, err := c.write([]byte(stripansi.Strip(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *Console) write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.Write(p)
}

// Fatal records a fatal entry. zerolog's Fatal would exit the process, so the
// level is set explicitly.
func (c *Console) Fatal(msg string, err error) {
	c.fatals.Add(1)
	event := c.log.WithLevel(zerolog.FatalLevel)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}

// Warn records a warning entry.
func (c *Console) Warn(msg string) {
	c.log.Warn().Msg(msg)
}

// Fatals returns how many fatal entries were recorded.
func (c *Console) Fatals() int {
	return int(c.fatals.Load())
}

// lockedWriter serializes zerolog output with raw process output.
type lockedWriter struct {
	c *Console
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	return w.c.write(p)
}
