package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "SHADOWT_LOG_LEVEL"

// Logger provides structured logging with context.
type Logger interface {
	Info(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Debug(component, message string, fields map[string]interface{})
}

// ParseLevel maps debug, info, warn and error to zerolog levels. Anything
// else, including the empty string, is info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// FromEnv returns a console logger on stderr at the level set in EnvLevel.
// Stdout stays free for command output and protocol traffic.
func FromEnv() *ZerologAdapter {
	return NewConsoleLogger(os.Stderr, ParseLevel(os.Getenv(EnvLevel)))
}

// Nop returns a logger that discards everything.
func Nop() *ZerologAdapter {
	return &ZerologAdapter{logger: zerolog.Nop()}
}
