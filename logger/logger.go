package logger

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// FormatPretty is accepted as an alias of the console format.
const FormatPretty = "pretty"

// Logger is a zerolog logger bound to the service it logs for.
type Logger struct {
	zl      zerolog.Logger
	service string
}

// New creates a logger writing to the configured output.
func New(cfg *Config, serviceName string) *Logger {
	return NewWithWriter(cfg, serviceName, outputWriter(cfg.Output))
}

// NewWithWriter creates a logger writing to w. Unknown levels fall back to
// info.
func NewWithWriter(cfg *Config, serviceName string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	ctx := zerolog.New(w).Level(level).With()
	switch strings.ToLower(cfg.Format) {
	case "console", FormatPretty:
		ctx = zerolog.New(consoleWriter(cfg, serviceName, w)).Level(level).With()
	default:
		if serviceName != "" {
			ctx = ctx.Str("service", serviceName)
		}
	}
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return &Logger{zl: ctx.Logger(), service: serviceName}
}

// NewDefault creates an info-level console logger on stderr.
func NewDefault(serviceName string) *Logger {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return New(cfg, serviceName)
}

func (l *Logger) with(ctx zerolog.Context) *Logger {
	return &Logger{zl: ctx.Logger(), service: l.service}
}

// WithComponent tags every entry with the component name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.with(l.zl.With().Str(FieldComponent, name))
}

// WithBuild tags every entry with the build it belongs to.
func (l *Logger) WithBuild(id string) *Logger {
	return l.with(l.zl.With().Str(FieldBuildID, id))
}

// WithError attaches err to every entry.
func (l *Logger) WithError(err error) *Logger {
	return l.with(l.zl.With().Err(err))
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Error(), msg, fields)
}

func emit(event *zerolog.Event, msg string, fields []map[string]interface{}) {
	if event == nil {
		return
	}
	for _, fm := range fields {
		event.Fields(fm)
	}
	event.Msg(msg)
}

// --- Global logger ---

var globalLogger *Logger

// SetGlobalLogger sets the global logger instance.
func SetGlobalLogger(l *Logger) { globalLogger = l }

// GetGlobalLogger returns the global logger, creating a default one if needed.
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		globalLogger = NewDefault("")
	}
	return globalLogger
}

func Debug(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Debug(msg, fields...) }
func Info(msg string, fields ...map[string]interface{})  { GetGlobalLogger().Info(msg, fields...) }
func Warn(msg string, fields ...map[string]interface{})  { GetGlobalLogger().Warn(msg, fields...) }
func Error(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Error(msg, fields...) }

// WithComponent returns a component-tagged logger from the global logger.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

func outputWriter(output string) io.Writer {
	if strings.EqualFold(output, "stdout") {
		return os.Stdout
	}
	return os.Stderr
}

var levelStyles = map[zerolog.Level]struct {
	tag   string
	color int
}{
	zerolog.TraceLevel: {"TRC", colorMagenta},
	zerolog.DebugLevel: {"DBG", colorCyan},
	zerolog.InfoLevel:  {"INF", colorGreen},
	zerolog.WarnLevel:  {"WRN", colorYellow},
	zerolog.ErrorLevel: {"ERR", colorRed},
	zerolog.FatalLevel: {"FTL", colorRed},
}

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorBlue    = 34
	colorMagenta = 35
	colorCyan    = 36
)

func colorize(s string, color int, noColor bool) string {
	if noColor {
		return s
	}
	return "\x1b[" + strconv.Itoa(color) + "m" + s + "\x1b[0m"
}

// consoleWriter renders "15:04:05 WRN [service] message key:value".
func consoleWriter(cfg *Config, serviceName string, w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
		FormatLevel: func(i interface{}) string {
			name, _ := i.(string)
			tag := strings.ToUpper(name)
			if lvl, err := zerolog.ParseLevel(name); err == nil {
				if st, ok := levelStyles[lvl]; ok {
					tag = colorize(st.tag, st.color, cfg.NoColor)
				}
			}
			if serviceName == "" {
				return tag
			}
			return tag + " " + colorize("["+serviceName+"]", colorBlue, cfg.NoColor)
		},
		FormatFieldName: func(i interface{}) string {
			name, _ := i.(string)
			return name + ":"
		},
	}
}
