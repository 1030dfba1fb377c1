// Package logger wraps zerolog behind the small component-tagged interface
// used by the batch runner and the command line tool.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Components tagged on every event.
const (
	ComponentCLI   = "cli"
	ComponentBatch = "batch"
)

// Field keys shared by the batch runner and the command line tool.
const (
	FieldRun   = "run"
	FieldSlice = "slice"
)

// Logger is the logging surface used across shortcardiac.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})

	// With returns a Logger that adds fields to every event.
	With(fields map[string]interface{}) Logger
}

// ZerologAdapter writes Logger events through zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// ForRun returns log tagged with the id of one batch run.
func ForRun(log Logger, runID string) Logger {
	return log.With(map[string]interface{}{FieldRun: runID})
}

func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

func NewConsoleLogger(level zerolog.Level) *ZerologAdapter {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}
	return NewZerolog(consoleWriter, level)
}

// Nop discards everything.
func Nop() *ZerologAdapter {
	return &ZerologAdapter{logger: zerolog.Nop()}
}

func (z *ZerologAdapter) With(fields map[string]interface{}) Logger {
	return &ZerologAdapter{logger: z.logger.With().Fields(fields).Logger()}
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	event := z.logger.Info().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	event := z.logger.Error().Str("component", component).Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg("operation failed")
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	event := z.logger.Warn().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	event := z.logger.Debug().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}
