// Package logger envuelve zerolog para inyectarlo en use cases, handlers y adaptadores.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env     string    // development: consola legible; cualquier otro: JSON
	Level   string    // trace, debug, info, warn, error; vacío o desconocido = info
	Service string    // se agrega como campo "service" si no está vacío
	Output  io.Writer // nil = os.Stdout
}

// Logger sublogger zerolog con campos fijos.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger raíz y lo deja también como logger global de zerolog.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// Nop descarta todo. Para tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With contexto para derivar un sublogger con más campos.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Named logger hijo con el campo component (auth, billing, http, rabbitmq...).
func (l *Logger) Named(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

// Zerolog expone el logger interno.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
