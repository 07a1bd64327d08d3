package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"pet-catalog/internal/platform/config"

	"github.com/rs/zerolog"
)

type Level = zerolog.Level

const (
	Debug = zerolog.DebugLevel
	Info  = zerolog.InfoLevel
	Warn  = zerolog.WarnLevel
	Error = zerolog.ErrorLevel
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// ZeroLogger adapta zerolog a la interfaz de campos por map.
type ZeroLogger struct {
	zl zerolog.Logger
}

type Options struct {
	Level  Level
	Format Format
	App    string
	Out    io.Writer // default os.Stdout
}

func New(opts Options) Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(opts.Level).With().Timestamp()
	if app := strings.TrimSpace(opts.App); app != "" {
		ctx = ctx.Str("app", app)
	}
	return &ZeroLogger{zl: ctx.Logger()}
}

// NewFromConfig crea el logger con LOG_LEVEL, LOG_FORMAT y APP_NAME ya
// cargados en config. out nil = stdout.
func NewFromConfig(cfg config.Config, out io.Writer) Logger {
	return New(Options{
		Level:  ParseLevel(cfg.LogLevel),
		Format: ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Out:    out,
	})
}

// Nop descarta todo (tests y defaults).
func Nop() Logger {
	return &ZeroLogger{zl: zerolog.Nop()}
}

func (l *ZeroLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &ZeroLogger{zl: l.zl.With().Fields(clean(fields)).Logger()}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]any) { l.zl.Debug().Fields(clean(fields)).Msg(msg) }
func (l *ZeroLogger) Info(msg string, fields map[string]any)  { l.zl.Info().Fields(clean(fields)).Msg(msg) }
func (l *ZeroLogger) Warn(msg string, fields map[string]any)  { l.zl.Warn().Fields(clean(fields)).Msg(msg) }
func (l *ZeroLogger) Error(msg string, fields map[string]any) { l.zl.Error().Fields(clean(fields)).Msg(msg) }

// keys vacías se descartan
func clean(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		out[k] = v
	}
	return out
}
