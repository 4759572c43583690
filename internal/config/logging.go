package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// LogLevel reads MINES_LOG_LEVEL, defaulting to debug in development and
// info otherwise.
func LogLevel() (logrus.Level, error) {
	if s, ok := os.LookupEnv("MINES_LOG_LEVEL"); ok {
		return logrus.ParseLevel(s)
	}
	if Development() {
		return logrus.DebugLevel, nil
	}
	return logrus.InfoLevel, nil
}
