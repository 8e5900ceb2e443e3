// Package logger holds the process-wide leveled logger.
package logger

import (
	"os"
	"strings"

	"github.com/labstack/gommon/log"
)

// Logger is shared by every package. Its level comes from LOG_LEVEL at start-up
// and can be changed later with SetLevel once the config is loaded.
var Logger = New("sellergen")

// New builds a logger with the level read from LOG_LEVEL.
func New(prefix string) *log.Logger {
	logger := log.New(prefix)
	logger.SetLevel(ParseLevel(os.Getenv("LOG_LEVEL")))
	logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")
	return logger
}

// SetLevel updates the shared logger.
func SetLevel(level string) {
	Logger.SetLevel(ParseLevel(level))
}

// ParseLevel maps a level name to a gommon level. Unknown names fall back to INFO.
func ParseLevel(level string) log.Lvl {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return log.DEBUG
	case "INFO":
		return log.INFO
	case "WARN":
		return log.WARN
	case "ERROR":
		return log.ERROR
	case "OFF":
		return log.OFF
	default:
		return log.INFO
	}
}
