package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config del logger del servicio.
type Config struct {
	Env   string // "development" imprime consola legible; cualquier otro valor, JSON
	Level string // trace, debug, info, warn, error (desconocido → info)
}

// Logger envuelve zerolog para inyectarlo como dependencia en los casos de
// uso y adaptadores en lugar del logger global.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger raíz y lo fija también como logger global de
// zerolog para las librerías que lo usen.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component deriva un sublogger con el campo component fijo. Cada adaptador
// (notify, requisitions, http) recibe el suyo para poder filtrar por origen.
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

// Niveles delegados a zerolog; el llamador encadena campos y cierra con Msg.
func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un contexto de campos fijos para un sublogger ad hoc.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog expone el logger interno para la API directa de zerolog.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
