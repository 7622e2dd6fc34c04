package logging

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Init configures the package-level logrus logger. Logs always go to
// stderr so they never mix with report output on stdout; when the report
// format is JSON the logs are JSON too, otherwise human-readable text.
func Init(jsonLogs bool, level log.Level) {
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	if jsonLogs {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to a
// logrus level. Unknown strings default to info.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
