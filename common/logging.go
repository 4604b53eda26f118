package common

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Configures the global logger. An empty logFile keeps logging on stderr,
// otherwise the output goes to a rotated file.
func SetupLogging(level string, logFile string) error {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    500,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}
	return nil
}

// Prints an error log message when a test case could not be loaded.
func LogLoadError(handler string, location string, err error) {
	log.WithFields(
		log.Fields{
			"Location": location,
			"Error":    err,
			"Message":  "Error loading the test case",
		},
	).Error(handler + ": load")
}

// Prints an error log message when a test case could not be decoded.
func LogDecodeError(handler string, location string, err error) {
	log.WithFields(
		log.Fields{
			"Location": location,
			"Error":    err,
			"Message":  "Error decoding the test case",
		},
	).Error(handler + ": decode")
}

// Prints an error log message when the secret could not be computed.
func LogComputationError(handler string, location string, err error) {
	log.WithFields(log.Fields{
		"Location": location,
		"Error":    err,
		"Message":  "Error recovering the secret",
	}).Error(handler + ": recover")
}
